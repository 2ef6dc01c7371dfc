package conversion

import (
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// Mapper maintains the identity binding between model elements and the
// view elements they were converted from (or render to). Downcast
// converters use it to find the view element a model change applies to.
type Mapper struct {
	toView  map[string]*view.Element
	toModel map[string]*model.Element
}

// NewMapper creates an empty mapper.
func NewMapper() *Mapper {
	return &Mapper{
		toView:  make(map[string]*view.Element),
		toModel: make(map[string]*model.Element),
	}
}

// Bind associates a model element with its view counterpart. Rebinding
// either side replaces the previous association.
func (m *Mapper) Bind(me *model.Element, ve *view.Element) {
	m.toView[me.ID()] = ve
	m.toModel[ve.ID()] = me
}

// ToViewElement returns the view element bound to the model element, or
// nil when unbound.
func (m *Mapper) ToViewElement(me *model.Element) *view.Element {
	return m.toView[me.ID()]
}

// ToModelElement returns the model element bound to the view element, or
// nil when unbound.
func (m *Mapper) ToModelElement(ve *view.Element) *model.Element {
	return m.toModel[ve.ID()]
}
