// Package view provides the presentational tree for EditKit.
//
// The view tree is an element/attribute tree resembling markup. Elements
// carry a tag name, an ordered attribute map, a class set, and children;
// text nodes carry character data. Every node has a stable ID so that the
// conversion engine can track per-node claims and emit patches that target
// nodes across process boundaries.
//
// # Mutation
//
// Converters never mutate elements directly. All writes go through a
// Writer, which applies the change and records a Patch describing it.
// The patch stream is what the live session endpoint ships to clients.
//
// # Encoding
//
// Trees marshal to and from a JSON transport encoding (see Decode and the
// MarshalJSON implementations). The encoding is deliberately not HTML:
// EditKit does not parse markup.
package view
