// Package image provides EditKit's image feature: converters between the
// view representation (an img element, optionally framed by a decorative
// figure wrapper carrying the "image" class) and the model "image"
// element.
//
// Upcast: a figure.image wrapper is converted by locating the functional
// img inside it, delegating the img's own conversion, then converting the
// wrapper's remaining children (captions and the like) into the produced
// model image. A plain img converts directly. Declarative mappings carry
// the alt and srcset attributes across.
//
// Downcast: scalar model attributes (src, alt) mirror onto the inner img
// element; the composite srcset value expands into up to three view
// attributes (srcset, sizes, width) and contracts again on removal.
//
// Register wires everything into a conversion.Conversion.
package image
