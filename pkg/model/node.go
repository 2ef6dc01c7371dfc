package model

import "github.com/google/uuid"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // Typed element, e.g. "image"
	KindText                // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a node in the model tree.
type Node interface {
	// ID is the stable identity of the node within its tree.
	ID() string

	// NodeKind reports whether the node is an element or text.
	NodeKind() Kind
}

// Element is a typed model element.
type Element struct {
	id       string
	name     string
	attrs    map[string]Value
	attrKeys []string // insertion order
	children []Node
}

// NewElement creates an element with the given type tag.
func NewElement(name string) *Element {
	return &Element{
		id:    uuid.NewString(),
		name:  name,
		attrs: make(map[string]Value),
	}
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{id: uuid.NewString(), Data: data}
}

// ID implements Node.
func (e *Element) ID() string { return e.id }

// NodeKind implements Node.
func (e *Element) NodeKind() Kind { return KindElement }

// Name returns the element's type tag.
func (e *Element) Name() string { return e.name }

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(key string) (Value, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.attrs[key]
	return ok
}

// AttributeKeys returns the attribute keys in insertion order.
func (e *Element) AttributeKeys() []string {
	keys := make([]string, len(e.attrKeys))
	copy(keys, e.attrKeys)
	return keys
}

// Children returns the child nodes. The returned slice must not be
// mutated; use a Writer.
func (e *Element) Children() []Node { return e.children }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// setAttribute is the raw mutation used by Writer.
func (e *Element) setAttribute(key string, value Value) {
	if _, exists := e.attrs[key]; !exists {
		e.attrKeys = append(e.attrKeys, key)
	}
	e.attrs[key] = value
}

// removeAttribute is the raw mutation used by Writer.
func (e *Element) removeAttribute(key string) bool {
	if _, exists := e.attrs[key]; !exists {
		return false
	}
	delete(e.attrs, key)
	for i, k := range e.attrKeys {
		if k == key {
			e.attrKeys = append(e.attrKeys[:i], e.attrKeys[i+1:]...)
			break
		}
	}
	return true
}

// Text is a model text node.
type Text struct {
	id   string
	Data string
}

// ID implements Node.
func (t *Text) ID() string { return t.id }

// NodeKind implements Node.
func (t *Text) NodeKind() Kind { return KindText }
