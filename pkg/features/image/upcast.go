package image

import (
	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// ModelName is the type tag of the model image element.
const ModelName = "image"

// wrapperClass marks a figure element as an image wrapper.
const wrapperClass = "image"

// ImgHandler returns the upcast converter for plain img elements. It
// claims the element together with its src attribute and produces a
// model image carrying src.
func ImgHandler() conversion.UpcastHandler {
	return conversion.HandleUpcast(conversion.ElementEvent(viewImgName), upcastImg)
}

func upcastImg(data *conversion.UpcastData, api *conversion.UpcastAPI) {
	img, ok := data.ViewItem.(*view.Element)
	if !ok {
		return
	}
	feature := conversion.Feature{Name: true, Attributes: []string{"src"}}
	if api.Consumable.Consume(img, feature) != conversion.Consumed {
		return
	}

	src, _ := img.Attribute("src")
	modelImage := model.NewElement(ModelName)
	api.Writer.SetAttribute("src", model.Scalar(src), modelImage)

	r := api.Writer.Insert(modelImage, data.ModelCursor)
	if api.Mapper != nil {
		api.Mapper.Bind(modelImage, img)
	}
	api.UpdateResult(r, data)
}

// FigureHandler returns the upcast converter for decorative figure
// wrappers carrying the "image" class. The wrapper itself produces no
// model node; its inner img does, and the wrapper's remaining children
// become children of that model image.
func FigureHandler() conversion.UpcastHandler {
	return conversion.HandleUpcast(conversion.ElementEvent("figure"), upcastFigure)
}

func upcastFigure(data *conversion.UpcastData, api *conversion.UpcastAPI) {
	figure, ok := data.ViewItem.(*view.Element)
	if !ok {
		return
	}
	// Guard only; the wrapper commits through the result, so a failed
	// delegation below leaves it eligible for other handlers.
	guard := conversion.Feature{Name: true, Classes: []string{wrapperClass}}
	if !api.Consumable.Test(figure, guard) {
		return
	}

	viewImage := FindViewImg(figure)
	if viewImage == nil || !viewImage.HasAttribute("src") ||
		!api.Consumable.Test(viewImage, conversion.NameFeature()) {
		return
	}

	result, _ := api.ConvertItem(viewImage, data.ModelCursor)
	if result == nil {
		return
	}
	modelImage, ok := result.FirstNode().(*model.Element)
	if !ok {
		return
	}

	// The img's own features were claimed above, so it declines here and
	// only the decoration children convert.
	api.ConvertChildren(figure, model.Position{Parent: modelImage})

	if api.Mapper != nil {
		api.Mapper.Bind(modelImage, figure)
	}
	api.UpdateResult(*result, data)
}

// AltMapping maps the view img alt attribute to the model alt attribute
// unchanged.
func AltMapping() conversion.AttributeMapping {
	return conversion.AttributeMapping{
		ViewName: viewImgName,
		ViewKey:  "alt",
		ModelKey: "alt",
	}
}

// SrcsetMapping maps the view img srcset attribute to the composite
// model srcset value, folding in the view width attribute when present.
func SrcsetMapping() conversion.AttributeMapping {
	return conversion.AttributeMapping{
		ViewName: viewImgName,
		ViewKey:  "srcset",
		ModelKey: "srcset",
		Value: func(value string, el *view.Element) model.Value {
			srcset := model.Srcset{Data: value}
			if width, ok := el.Attribute("width"); ok {
				srcset.Width = width
			}
			return srcset
		},
	}
}
