package conversion

import (
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// FragmentName is the type tag of the synthetic root element an upcast
// pass produces its nodes into.
const FragmentName = "$fragment"

// UpcastData carries the state of one upcast event. A handler commits by
// setting ModelRange (normally through UpcastAPI.UpdateResult); a nil
// ModelRange after dispatch means every handler declined.
type UpcastData struct {
	// ViewItem is the view node the event fired for.
	ViewItem view.Node

	// ModelCursor is the model position new content must be inserted at.
	ModelCursor model.Position

	// ModelRange delimits the produced model nodes. Nil until a handler
	// commits.
	ModelRange *model.Range
}

// UpcastFunc converts one view node. It must Test its consumables before
// any non-reversible work, Consume immediately before mutating output,
// and return without side effects when it cannot convert.
type UpcastFunc func(data *UpcastData, api *UpcastAPI)

// UpcastHandler resolves events to converter functions. Lookup returns
// nil for events the handler does not care about.
type UpcastHandler interface {
	Lookup(event string) UpcastFunc
}

// HandleUpcast adapts a single (event, func) pair into an UpcastHandler.
func HandleUpcast(event string, fn UpcastFunc) UpcastHandler {
	return upcastEntry{event: event, fn: fn}
}

type upcastEntry struct {
	event string
	fn    UpcastFunc
}

func (h upcastEntry) Lookup(event string) UpcastFunc {
	if event == h.event {
		return h.fn
	}
	return nil
}

// UpcastResult is the outcome of one upcast pass.
type UpcastResult struct {
	// Root is the synthetic fragment element holding the produced nodes.
	Root *model.Element

	// Declined lists the IDs of view nodes no handler converted.
	Declined []string
}

// UpcastDispatcher drives view-to-model conversion: a depth-first
// traversal fires an event per view node against an ordered handler
// list. The first handler to commit a result wins; declarative attribute
// mappings then enrich the committed nodes.
type UpcastDispatcher struct {
	handlers []UpcastHandler
	mappings []AttributeMapping
	mapper   *Mapper
}

// NewUpcastDispatcher creates a dispatcher with the given handlers.
func NewUpcastDispatcher(handlers ...UpcastHandler) *UpcastDispatcher {
	return &UpcastDispatcher{handlers: handlers, mapper: NewMapper()}
}

// BindMapper makes the dispatcher record model↔view bindings into the
// given mapper, typically shared with a downcast dispatcher.
func (d *UpcastDispatcher) BindMapper(m *Mapper) {
	d.mapper = m
}

// Add appends handlers. Registration order is dispatch order.
func (d *UpcastDispatcher) Add(handlers ...UpcastHandler) {
	d.handlers = append(d.handlers, handlers...)
}

// On appends a handler for a single event.
func (d *UpcastDispatcher) On(event string, fn UpcastFunc) {
	d.Add(HandleUpcast(event, fn))
}

// MapAttribute registers a declarative view-attribute to model-attribute
// mapping, applied to every committed element conversion.
func (d *UpcastDispatcher) MapAttribute(m AttributeMapping) {
	d.mappings = append(d.mappings, m)
}

// Convert runs one upcast pass over the given view nodes. Each pass has
// fresh gate state, so converting the same tree twice yields the same
// result.
func (d *UpcastDispatcher) Convert(nodes ...view.Node) *UpcastResult {
	root := model.NewElement(FragmentName)
	result := &UpcastResult{Root: root}
	api := &UpcastAPI{
		Consumable: NewViewConsumable(),
		Writer:     model.NewWriter(),
		Mapper:     d.mapper,
		dispatcher: d,
		result:     result,
	}
	cursor := model.Position{Parent: root}
	for _, n := range nodes {
		_, cursor = api.ConvertItem(n, cursor)
	}
	return result
}

// UpcastAPI is the conversion surface handed to upcast handlers.
type UpcastAPI struct {
	// Consumable is the feature gate for this pass.
	Consumable *ViewConsumable

	// Writer mutates the output model tree.
	Writer *model.Writer

	// Mapper records which view element a produced model element came
	// from, for later downcast passes.
	Mapper *Mapper

	dispatcher *UpcastDispatcher
	result     *UpcastResult
}

// ConvertItem dispatches the event for a single view node at the cursor.
// It returns the produced range (nil when every handler declined) and
// the advanced cursor.
func (api *UpcastAPI) ConvertItem(item view.Node, cursor model.Position) (*model.Range, model.Position) {
	data := &UpcastData{ViewItem: item, ModelCursor: cursor}
	api.dispatcher.fire(eventFor(item), data, api)
	if data.ModelRange == nil {
		// Record as unconverted only while the node itself is still
		// unclaimed; a node consumed in an earlier step was converted,
		// not declined.
		if api.Consumable.Test(item, NameFeature()) {
			api.result.Declined = append(api.result.Declined, item.ID())
		}
		return nil, cursor
	}
	return data.ModelRange, data.ModelRange.End
}

// ConvertChildren converts every child of the element at the cursor.
// Children already claimed during this pass decline naturally and are
// skipped.
func (api *UpcastAPI) ConvertChildren(el *view.Element, cursor model.Position) model.Position {
	for _, child := range el.Children() {
		_, cursor = api.ConvertItem(child, cursor)
	}
	return cursor
}

// UpdateResult commits the range as the authoritative result for the
// current event, preventing later handlers from also claiming it.
func (api *UpcastAPI) UpdateResult(r model.Range, data *UpcastData) {
	data.ModelRange = &r
	data.ModelCursor = r.End
}

// fire runs the handlers for the event in registration order, stopping
// at the first committed result, then applies attribute mappings to the
// committed nodes.
func (d *UpcastDispatcher) fire(event string, data *UpcastData, api *UpcastAPI) {
	for _, h := range d.handlers {
		fn := h.Lookup(event)
		if fn == nil {
			continue
		}
		fn(data, api)
		if data.ModelRange != nil {
			break
		}
	}
	if data.ModelRange != nil {
		d.applyMappings(data, api)
	}
}

// TextHandler returns the default upcast converter for text nodes: it
// claims the node and mirrors its data into a model text node.
func TextHandler() UpcastHandler {
	return HandleUpcast(TextEvent, func(data *UpcastData, api *UpcastAPI) {
		text, ok := data.ViewItem.(*view.Text)
		if !ok {
			return
		}
		if api.Consumable.Consume(text, NameFeature()) != Consumed {
			return
		}
		r := api.Writer.Insert(model.NewText(text.Data), data.ModelCursor)
		api.UpdateResult(r, data)
	})
}
