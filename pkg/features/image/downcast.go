package image

import (
	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// defaultSizes is the fixed sizes value written alongside srcset.
// Responsive device-width sizing is not computed, only declared.
const defaultSizes = "100vw"

// MirrorAttribute returns a downcast converter that mirrors a scalar
// model attribute of the image element onto the inner view img. An
// absent new value writes an empty string; the view attribute is never
// removed by this converter.
func MirrorAttribute(key string) conversion.DowncastHandler {
	event := conversion.AttributeEvent(key, ModelName)
	return conversion.HandleDowncast(event, func(ch conversion.AttributeChange, api *conversion.DowncastAPI) {
		if api.Consumable.Consume(ch.Item, event) != conversion.Consumed {
			return
		}
		img := targetImg(ch, api)
		if img == nil {
			return
		}
		value := ""
		if s, ok := ch.New.(model.Scalar); ok {
			value = string(s)
		}
		api.Writer.SetAttribute(key, value, img)
	})
}

// SrcsetHandler returns the downcast converter for the composite srcset
// attribute. Setting a value with data writes srcset, sizes and
// (optionally) width; removing a value that had data removes the same
// attributes. A value without data is a valid no-op in both directions.
func SrcsetHandler() conversion.DowncastHandler {
	event := conversion.AttributeEvent("srcset", ModelName)
	return conversion.HandleDowncast(event, func(ch conversion.AttributeChange, api *conversion.DowncastAPI) {
		if api.Consumable.Consume(ch.Item, event) != conversion.Consumed {
			return
		}
		img := targetImg(ch, api)
		if img == nil {
			return
		}

		if ch.New == nil {
			old, ok := ch.Old.(model.Srcset)
			if !ok || !old.HasData() {
				// Never materialized, nothing to remove.
				return
			}
			api.Writer.RemoveAttribute("srcset", img)
			api.Writer.RemoveAttribute("sizes", img)
			if old.HasWidth() {
				api.Writer.RemoveAttribute("width", img)
			}
			return
		}

		next, ok := ch.New.(model.Srcset)
		if !ok || !next.HasData() {
			return
		}
		api.Writer.SetAttribute("srcset", next.Data, img)
		api.Writer.SetAttribute("sizes", defaultSizes, img)
		if next.HasWidth() {
			api.Writer.SetAttribute("width", next.Width, img)
		}
	})
}

// targetImg resolves the view img element a model image change applies
// to: the bound view element, descended into when it is a wrapper.
func targetImg(ch conversion.AttributeChange, api *conversion.DowncastAPI) *view.Element {
	el, ok := ch.Item.(*model.Element)
	if !ok {
		return nil
	}
	bound := api.Mapper.ToViewElement(el)
	if bound == nil {
		return nil
	}
	return FindViewImg(bound)
}
