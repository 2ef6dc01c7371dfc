package conversion

import (
	"testing"

	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// claimingHandler consumes its event and optionally writes a marker
// attribute on the bound view element.
func claimingHandler(event, marker string, calls *int) DowncastHandler {
	return HandleDowncast(event, func(ch AttributeChange, api *DowncastAPI) {
		*calls++
		if api.Consumable.Consume(ch.Item, event) != Consumed {
			return
		}
		if el, ok := ch.Item.(*model.Element); ok {
			if target := api.Mapper.ToViewElement(el); target != nil {
				api.Writer.SetAttribute(marker, "1", target)
			}
		}
	})
}

func TestDowncastFirstConsumerWins(t *testing.T) {
	mapper := NewMapper()
	modelEl := model.NewElement("image")
	viewEl := view.NewElement("img")
	mapper.Bind(modelEl, viewEl)

	event := AttributeEvent("src", "image")
	var firstCalls, secondCalls int
	d := NewDowncastDispatcher(mapper,
		claimingHandler(event, "first", &firstCalls),
		claimingHandler(event, "second", &secondCalls),
	)

	w := view.NewWriter()
	d.ConvertAttribute(AttributeChange{Item: modelEl, Key: "src", New: model.Scalar("/a.png")}, w)

	if firstCalls != 1 {
		t.Errorf("first handler calls = %d, want 1", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("second handler calls = %d, want 0 after the claim", secondCalls)
	}
	if !viewEl.HasAttribute("first") || viewEl.HasAttribute("second") {
		t.Error("wrong handler mutated the view element")
	}
}

func TestDowncastDecliningHandlerAllowsFallthrough(t *testing.T) {
	mapper := NewMapper()
	modelEl := model.NewElement("image")
	viewEl := view.NewElement("img")
	mapper.Bind(modelEl, viewEl)

	event := AttributeEvent("src", "image")
	declining := HandleDowncast(event, func(ch AttributeChange, api *DowncastAPI) {
		// Declines: neither consumes nor mutates.
	})
	var calls int
	d := NewDowncastDispatcher(mapper, declining, claimingHandler(event, "second", &calls))

	w := view.NewWriter()
	d.ConvertAttribute(AttributeChange{Item: modelEl, Key: "src", New: model.Scalar("/a.png")}, w)

	if calls != 1 {
		t.Errorf("fallthrough handler calls = %d, want 1", calls)
	}
	if !viewEl.HasAttribute("second") {
		t.Error("fallthrough handler did not run")
	}
}

func TestDowncastEventNameIncludesElementType(t *testing.T) {
	ch := AttributeChange{Item: model.NewElement("image"), Key: "srcset"}
	if got, want := ch.event(), "attribute:srcset:image"; got != want {
		t.Errorf("event() = %q, want %q", got, want)
	}
}

func TestDowncastPassesAreIndependent(t *testing.T) {
	mapper := NewMapper()
	modelEl := model.NewElement("image")
	viewEl := view.NewElement("img")
	mapper.Bind(modelEl, viewEl)

	event := AttributeEvent("src", "image")
	var calls int
	d := NewDowncastDispatcher(mapper, claimingHandler(event, "m", &calls))

	ch := AttributeChange{Item: modelEl, Key: "src", New: model.Scalar("/a.png")}
	d.ConvertAttribute(ch, view.NewWriter())
	d.ConvertAttribute(ch, view.NewWriter())

	// The gate is per pass, so the second pass claims again.
	if calls != 2 {
		t.Errorf("calls across two passes = %d, want 2", calls)
	}
}

func TestMapperBinding(t *testing.T) {
	mapper := NewMapper()
	me := model.NewElement("image")
	ve := view.NewElement("figure")

	if mapper.ToViewElement(me) != nil {
		t.Error("unbound model element resolved to a view element")
	}

	mapper.Bind(me, ve)

	if got := mapper.ToViewElement(me); got != ve {
		t.Errorf("ToViewElement = %v, want the bound element", got)
	}
	if got := mapper.ToModelElement(ve); got != me {
		t.Errorf("ToModelElement = %v, want the bound element", got)
	}
}
