// Package model provides the semantic document tree for EditKit.
//
// Model elements carry a type tag (for example "image") and typed
// attribute values rather than raw strings. A Value is either a Scalar
// string or a composite record such as Srcset; converters type-switch on
// the union so that each shape is handled as an explicit case.
//
// Positions and ranges address places in the tree: a Position is a
// (parent, offset) pair and a Range is an ordered pair of positions
// delimiting newly produced nodes during a conversion pass.
package model
