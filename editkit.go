// Package editkit provides the public API for the EditKit conversion
// engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/editkit-dev/editkit"
//
// Usage:
//
//	c := editkit.New()
//	result := c.Upcast.Convert(viewTree)
package editkit

import (
	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/features/image"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// Conversion is the two-way dispatcher pair. See pkg/conversion.
type Conversion = conversion.Conversion

// UpcastResult is the outcome of one view-to-model pass.
type UpcastResult = conversion.UpcastResult

// AttributeChange is one model attribute mutation to downcast.
type AttributeChange = conversion.AttributeChange

// New creates a conversion with the built-in features registered. Use
// conversion.New directly for an empty pipeline.
func New() *Conversion {
	c := conversion.New()
	image.Register(c)
	return c
}

// Upcast converts a view tree with the built-in features in one call.
func Upcast(nodes ...view.Node) *UpcastResult {
	return New().Upcast.Convert(nodes...)
}

// Downcast applies model attribute changes through a fresh converter,
// returning the recorded view patches. The conversion must be the one
// that produced the model tree, so its mapper knows the bindings.
func Downcast(c *Conversion, changes []AttributeChange) []view.Patch {
	w := view.NewWriter()
	c.Downcast.Convert(changes, w)
	return w.Patches()
}

// DecodeView parses the view tree transport encoding.
func DecodeView(data []byte) (view.Node, error) {
	return view.Decode(data)
}

// Scalar is a plain string attribute value.
type Scalar = model.Scalar

// Srcset is the composite responsive-image attribute value.
type Srcset = model.Srcset
