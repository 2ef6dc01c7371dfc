package image

import "github.com/editkit-dev/editkit/pkg/conversion"

// Register wires the image feature's converters into the conversion.
// The figure handler precedes the img handler so a wrapper claims its
// inner img before the img is visited standalone.
func Register(c *conversion.Conversion) {
	c.Upcast.Add(FigureHandler(), ImgHandler())
	c.Upcast.MapAttribute(AltMapping())
	c.Upcast.MapAttribute(SrcsetMapping())

	c.Downcast.Add(
		MirrorAttribute("src"),
		MirrorAttribute("alt"),
		SrcsetHandler(),
	)
}
