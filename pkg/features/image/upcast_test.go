package image

import (
	"testing"

	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

func newConversion() *conversion.Conversion {
	c := conversion.New()
	Register(c)
	return c
}

// imageFigure builds a typical wrapper: a figure.image holding an img
// and a caption.
func imageFigure(attrs ...view.Attr) (*view.Element, *view.Element) {
	figure := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	img := view.NewElement("img", attrs...)
	figure.AppendChild(img, view.NewElement("figcaption"))
	return figure, img
}

func TestUpcastPlainImg(t *testing.T) {
	c := newConversion()
	img := view.NewElement("img",
		view.Attr{Key: "src", Value: "/a.png"},
		view.Attr{Key: "alt", Value: "a picture"},
	)

	result := c.Upcast.Convert(img)

	if result.Root.ChildCount() != 1 {
		t.Fatalf("produced %d nodes, want 1", result.Root.ChildCount())
	}
	modelImage, ok := result.Root.Children()[0].(*model.Element)
	if !ok || modelImage.Name() != ModelName {
		t.Fatalf("produced node = %v, want image element", result.Root.Children()[0])
	}
	if src, _ := modelImage.Attribute("src"); src != model.Scalar("/a.png") {
		t.Errorf("src = %#v, want Scalar(/a.png)", src)
	}
	if alt, _ := modelImage.Attribute("alt"); alt != model.Scalar("a picture") {
		t.Errorf("alt = %#v, want Scalar(a picture)", alt)
	}
}

func TestUpcastFigureProducesSingleImage(t *testing.T) {
	c := newConversion()
	figure, _ := imageFigure(view.Attr{Key: "src", Value: "/a.png"})

	result := c.Upcast.Convert(figure)

	if result.Root.ChildCount() != 1 {
		t.Fatalf("produced %d top-level nodes, want 1", result.Root.ChildCount())
	}
	modelImage := result.Root.Children()[0].(*model.Element)
	if modelImage.Name() != ModelName {
		t.Fatalf("produced %q element, want %q", modelImage.Name(), ModelName)
	}
	if src, _ := modelImage.Attribute("src"); src != model.Scalar("/a.png") {
		t.Errorf("src = %#v, want Scalar(/a.png)", src)
	}
	// The figure itself converted, so it is not reported as declined.
	for _, id := range result.Declined {
		if id == figure.ID() {
			t.Error("converted figure reported as declined")
		}
	}
}

func TestUpcastFigureSrcset(t *testing.T) {
	c := newConversion()
	figure, _ := imageFigure(
		view.Attr{Key: "src", Value: "/a.png"},
		view.Attr{Key: "srcset", Value: "a 1x, b 2x"},
		view.Attr{Key: "width", Value: "300"},
	)

	result := c.Upcast.Convert(figure)

	modelImage := result.Root.Children()[0].(*model.Element)
	got, ok := modelImage.Attribute("srcset")
	if !ok {
		t.Fatal("srcset missing on model image")
	}
	want := model.Srcset{Data: "a 1x, b 2x", Width: "300"}
	if got != want {
		t.Errorf("srcset = %#v, want %#v", got, want)
	}
}

func TestUpcastSrcsetWithoutWidth(t *testing.T) {
	c := newConversion()
	img := view.NewElement("img",
		view.Attr{Key: "src", Value: "/a.png"},
		view.Attr{Key: "srcset", Value: "a 1x"},
	)

	result := c.Upcast.Convert(img)

	modelImage := result.Root.Children()[0].(*model.Element)
	got, _ := modelImage.Attribute("srcset")
	if got != (model.Srcset{Data: "a 1x"}) {
		t.Errorf("srcset = %#v, want data only", got)
	}
}

func TestUpcastFigureDeclines(t *testing.T) {
	noClass := view.NewElement("figure")
	noClass.AppendChild(view.NewElement("img", view.Attr{Key: "src", Value: "/a.png"}))

	noImg := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	noImg.AppendChild(view.NewElement("figcaption"))

	noSrc := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	noSrc.AppendChild(view.NewElement("img"))

	tests := []struct {
		name   string
		figure *view.Element
	}{
		{"missing image class", noClass},
		{"no usable inner img", noImg},
		{"img without src", noSrc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := conversion.NewUpcastDispatcher(FigureHandler())
			result := d.Convert(tt.figure)

			if result.Root.ChildCount() != 0 {
				t.Errorf("produced %d nodes, want 0", result.Root.ChildCount())
			}
			if len(result.Declined) != 1 || result.Declined[0] != tt.figure.ID() {
				t.Errorf("Declined = %v, want the figure", result.Declined)
			}
		})
	}
}

func TestUpcastFigureDeclineLeavesNoConsumption(t *testing.T) {
	// When the guard fails the wrapper must stay fully claimable for
	// other handlers: install a probe after the figure handler.
	figure := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	figure.AppendChild(view.NewElement("img")) // no src, guard fails

	var sawUnconsumed bool
	probe := conversion.HandleUpcast(conversion.ElementEvent("figure"),
		func(data *conversion.UpcastData, api *conversion.UpcastAPI) {
			feature := conversion.Feature{Name: true, Classes: []string{"image"}}
			sawUnconsumed = api.Consumable.Test(data.ViewItem, feature)
		})

	d := conversion.NewUpcastDispatcher(FigureHandler(), probe)
	d.Convert(figure)

	if !sawUnconsumed {
		t.Error("declined figure left consumed features behind")
	}
}

func TestUpcastFigureDeclinesWhenImgAlreadyConsumed(t *testing.T) {
	figure, img := imageFigure(view.Attr{Key: "src", Value: "/a.png"})

	// A handler registered before the figure converter claims the inner
	// img; the figure must then decline.
	preclaim := conversion.HandleUpcast(conversion.ElementEvent("figure"),
		func(data *conversion.UpcastData, api *conversion.UpcastAPI) {
			api.Consumable.Consume(img, conversion.NameFeature())
		})

	d := conversion.NewUpcastDispatcher(preclaim, FigureHandler(), ImgHandler())
	result := d.Convert(figure)

	if result.Root.ChildCount() != 0 {
		t.Errorf("produced %d nodes from a pre-claimed figure, want 0", result.Root.ChildCount())
	}
}

func TestUpcastFigureConvertsRemainingChildren(t *testing.T) {
	c := conversion.New()
	Register(c)
	// Caption text should become a child of the model image.
	figure := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	figure.AppendChild(
		view.NewElement("img", view.Attr{Key: "src", Value: "/a.png"}),
		view.NewText("caption"),
	)

	result := c.Upcast.Convert(figure)

	modelImage := result.Root.Children()[0].(*model.Element)
	if modelImage.ChildCount() != 1 {
		t.Fatalf("model image has %d children, want 1", modelImage.ChildCount())
	}
	text, ok := modelImage.Children()[0].(*model.Text)
	if !ok || text.Data != "caption" {
		t.Errorf("model image child = %v, want caption text", modelImage.Children()[0])
	}
}

func TestUpcastIdempotentAcrossPasses(t *testing.T) {
	c := newConversion()
	figure, _ := imageFigure(
		view.Attr{Key: "src", Value: "/a.png"},
		view.Attr{Key: "srcset", Value: "a 1x"},
	)

	first := c.Upcast.Convert(figure)
	second := c.Upcast.Convert(figure)

	for i, result := range []*conversion.UpcastResult{first, second} {
		if result.Root.ChildCount() != 1 {
			t.Fatalf("pass %d produced %d nodes, want 1", i+1, result.Root.ChildCount())
		}
		modelImage := result.Root.Children()[0].(*model.Element)
		if src, _ := modelImage.Attribute("src"); src != model.Scalar("/a.png") {
			t.Errorf("pass %d src = %#v", i+1, src)
		}
		if srcset, _ := modelImage.Attribute("srcset"); srcset != (model.Srcset{Data: "a 1x"}) {
			t.Errorf("pass %d srcset = %#v", i+1, srcset)
		}
	}
}

func TestUpcastSecondHandlerNeverReconverts(t *testing.T) {
	// A competing figure handler registered after the image feature must
	// not run once the feature committed the wrapper.
	c := newConversion()
	var competitorRan bool
	c.Upcast.On(conversion.ElementEvent("figure"),
		func(data *conversion.UpcastData, api *conversion.UpcastAPI) {
			competitorRan = true
		})

	figure, _ := imageFigure(view.Attr{Key: "src", Value: "/a.png"})
	c.Upcast.Convert(figure)

	if competitorRan {
		t.Error("later handler ran for an already-committed wrapper")
	}
}
