package image

import (
	"testing"

	"github.com/editkit-dev/editkit/pkg/view"
)

func TestFindViewImg(t *testing.T) {
	plainImg := view.NewElement("img", view.Attr{Key: "src", Value: "/a.png"})

	wrapped := view.NewElement("figure", view.Attr{Key: "class", Value: "image"})
	innerImg := view.NewElement("img", view.Attr{Key: "src", Value: "/b.png"})
	wrapped.AppendChild(
		view.NewElement("div", view.Attr{Key: "class", Value: "decoration"}),
		innerImg,
		view.NewElement("figcaption"),
	)

	nested := view.NewElement("figure")
	inner := view.NewElement("div")
	deepImg := view.NewElement("img")
	inner.AppendChild(deepImg)
	nested.AppendChild(inner)

	empty := view.NewElement("figure")
	empty.AppendChild(view.NewElement("figcaption"), view.NewText("caption"))

	tooDeep := view.NewElement("figure")
	level := tooDeep
	for i := 0; i < maxScanDepth; i++ {
		next := view.NewElement("div")
		level.AppendChild(next)
		level = next
	}
	level.AppendChild(view.NewElement("img"))

	tests := []struct {
		name string
		el   *view.Element
		want *view.Element
	}{
		{"nil element", nil, nil},
		{"element is the img", plainImg, plainImg},
		{"img among decoration siblings", wrapped, innerImg},
		{"img one level down", nested, deepImg},
		{"no img present", empty, nil},
		{"img beyond scan depth", tooDeep, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindViewImg(tt.el); got != tt.want {
				t.Errorf("FindViewImg() = %v, want %v", got, tt.want)
			}
		})
	}
}
