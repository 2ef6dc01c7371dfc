package conversion

import (
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// AttributeMapping is a declarative upcast rule: when an element with
// ViewName has been converted and carries ViewKey, claim that attribute
// and set ModelKey on the produced model element.
type AttributeMapping struct {
	// ViewName is the view element tag the rule applies to, e.g. "img".
	ViewName string

	// ViewKey is the view attribute to map.
	ViewKey string

	// ModelKey is the model attribute to set.
	ModelKey string

	// Value transforms the raw view attribute value into a model value.
	// It may consult the source element for sibling attributes. A nil
	// transform maps the value to model.Scalar unchanged; a transform
	// returning nil withdraws the mapping for this element without
	// consuming anything.
	Value func(value string, el *view.Element) model.Value
}

// applyMappings runs the declared attribute mappings against a committed
// element conversion. Each mapped attribute is consumed so later passes
// and handlers see it as already converted.
func (d *UpcastDispatcher) applyMappings(data *UpcastData, api *UpcastAPI) {
	el, ok := data.ViewItem.(*view.Element)
	if !ok {
		return
	}
	target, ok := data.ModelRange.FirstNode().(*model.Element)
	if !ok {
		return
	}
	for _, m := range d.mappings {
		if m.ViewName != el.Name() {
			continue
		}
		raw, present := el.Attribute(m.ViewKey)
		if !present || !api.Consumable.Test(el, AttributeFeature(m.ViewKey)) {
			continue
		}
		value := model.Value(model.Scalar(raw))
		if m.Value != nil {
			value = m.Value(raw, el)
			if value == nil {
				continue
			}
		}
		if api.Consumable.Consume(el, AttributeFeature(m.ViewKey)) != Consumed {
			continue
		}
		api.Writer.SetAttribute(m.ModelKey, value, target)
	}
}
