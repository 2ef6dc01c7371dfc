package conversion

import (
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// AttributeChange describes one model attribute mutation to downcast.
// Old and New are nil when the attribute was absent before or is being
// removed.
type AttributeChange struct {
	Item model.Node
	Key  string
	Old  model.Value
	New  model.Value
}

// event returns the downcast event name for the change.
func (ch AttributeChange) event() string {
	name := ""
	if el, ok := ch.Item.(*model.Element); ok {
		name = el.Name()
	}
	return AttributeEvent(ch.Key, name)
}

// DowncastFunc converts one model attribute change into view mutations.
// The exactly-once contract applies: consume the change before mutating,
// decline silently when it is already claimed.
type DowncastFunc func(ch AttributeChange, api *DowncastAPI)

// DowncastHandler resolves downcast events to converter functions.
// Lookup returns nil for events the handler does not care about.
type DowncastHandler interface {
	Lookup(event string) DowncastFunc
}

// HandleDowncast adapts a single (event, func) pair into a DowncastHandler.
func HandleDowncast(event string, fn DowncastFunc) DowncastHandler {
	return downcastEntry{event: event, fn: fn}
}

type downcastEntry struct {
	event string
	fn    DowncastFunc
}

func (h downcastEntry) Lookup(event string) DowncastFunc {
	if event == h.event {
		return h.fn
	}
	return nil
}

// DowncastAPI is the conversion surface handed to downcast handlers.
type DowncastAPI struct {
	// Consumable is the change gate for this pass.
	Consumable *ModelConsumable

	// Mapper resolves model elements to their view counterparts.
	Mapper *Mapper

	// Writer mutates the view tree and records the patch stream.
	Writer *view.Writer
}

// DowncastDispatcher drives model-to-view attribute conversion against
// an ordered handler list.
type DowncastDispatcher struct {
	handlers []DowncastHandler
	mapper   *Mapper
}

// NewDowncastDispatcher creates a dispatcher backed by the mapper.
func NewDowncastDispatcher(mapper *Mapper, handlers ...DowncastHandler) *DowncastDispatcher {
	return &DowncastDispatcher{mapper: mapper, handlers: handlers}
}

// Add appends handlers. Registration order is dispatch order.
func (d *DowncastDispatcher) Add(handlers ...DowncastHandler) {
	d.handlers = append(d.handlers, handlers...)
}

// On appends a handler for a single event.
func (d *DowncastDispatcher) On(event string, fn DowncastFunc) {
	d.Add(HandleDowncast(event, fn))
}

// Mapper returns the dispatcher's model↔view binding.
func (d *DowncastDispatcher) Mapper() *Mapper {
	return d.mapper
}

// Convert runs one downcast pass over the changes, writing view
// mutations through the writer. Gate state is fresh per pass.
func (d *DowncastDispatcher) Convert(changes []AttributeChange, writer *view.Writer) {
	api := &DowncastAPI{
		Consumable: NewModelConsumable(),
		Mapper:     d.mapper,
		Writer:     writer,
	}
	for _, ch := range changes {
		d.fire(ch, api)
	}
}

// ConvertAttribute runs a single-change pass.
func (d *DowncastDispatcher) ConvertAttribute(ch AttributeChange, writer *view.Writer) {
	d.Convert([]AttributeChange{ch}, writer)
}

// fire runs the handlers for the change in registration order. Handlers
// coordinate through the consumable; once one claims the change the rest
// decline.
func (d *DowncastDispatcher) fire(ch AttributeChange, api *DowncastAPI) {
	event := ch.event()
	for _, h := range d.handlers {
		fn := h.Lookup(event)
		if fn == nil {
			continue
		}
		fn(ch, api)
		if !api.Consumable.Test(ch.Item, event) {
			break
		}
	}
}
