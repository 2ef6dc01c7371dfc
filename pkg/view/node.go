package view

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <figure>, <img>, etc.
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

// Node is a node in the view tree.
type Node interface {
	// ID is the stable identity of the node within its tree.
	ID() string

	// NodeKind reports whether the node is an element or text.
	NodeKind() Kind
}

// Attr is a single view attribute.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Element is a named view element with ordered attributes, a class set
// and children.
type Element struct {
	id       string
	name     string
	attrs    map[string]string
	attrKeys []string // insertion order
	classes  map[string]struct{}
	children []Node
}

// NewElement creates an element. The "class" attribute, if given, is
// split on whitespace into the class set rather than stored as a plain
// attribute.
func NewElement(name string, attrs ...Attr) *Element {
	e := &Element{
		id:      uuid.NewString(),
		name:    name,
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
	}
	for _, a := range attrs {
		e.setAttribute(a.Key, a.Value)
	}
	return e
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{id: uuid.NewString(), Data: data}
}

// ID implements Node.
func (e *Element) ID() string { return e.id }

// NodeKind implements Node.
func (e *Element) NodeKind() Kind { return KindElement }

// Name returns the element's tag name.
func (e *Element) Name() string { return e.name }

// Attribute returns the attribute value and whether it is present.
// "class" is materialized from the class set.
func (e *Element) Attribute(key string) (string, bool) {
	if key == "class" {
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.ClassNames(), " "), true
	}
	v, ok := e.attrs[key]
	return v, ok
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.Attribute(key)
	return ok
}

// AttributeKeys returns the attribute keys in insertion order,
// excluding "class".
func (e *Element) AttributeKeys() []string {
	keys := make([]string, len(e.attrKeys))
	copy(keys, e.attrKeys)
	return keys
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// ClassNames returns the sorted class names.
func (e *Element) ClassNames() []string {
	names := make([]string, 0, len(e.classes))
	for name := range e.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Children returns the child nodes. The returned slice must not be
// mutated; use AppendChild.
func (e *Element) Children() []Node { return e.children }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// AppendChild appends children to the element.
func (e *Element) AppendChild(children ...Node) *Element {
	e.children = append(e.children, children...)
	return e
}

// setAttribute is the raw mutation used by Writer and constructors.
func (e *Element) setAttribute(key, value string) {
	if key == "class" {
		for _, name := range strings.Fields(value) {
			e.classes[name] = struct{}{}
		}
		return
	}
	if _, exists := e.attrs[key]; !exists {
		e.attrKeys = append(e.attrKeys, key)
	}
	e.attrs[key] = value
}

// removeAttribute is the raw mutation used by Writer.
func (e *Element) removeAttribute(key string) bool {
	if key == "class" {
		had := len(e.classes) > 0
		e.classes = make(map[string]struct{})
		return had
	}
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

// Text is a view text node.
type Text struct {
	id   string
	Data string
}

// ID implements Node.
func (t *Text) ID() string { return t.id }

// NodeKind implements Node.
func (t *Text) NodeKind() Kind { return KindText }
