package conversion

import (
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// ConsumeResult is the typed outcome of a Consume call.
type ConsumeResult uint8

const (
	// Consumed means every requested feature was claimed by this call.
	Consumed ConsumeResult = iota

	// AlreadyConsumed means at least one feature was claimed earlier or
	// is not present on the node; the call had no effect.
	AlreadyConsumed
)

// String returns the string representation of the ConsumeResult.
func (r ConsumeResult) String() string {
	switch r {
	case Consumed:
		return "Consumed"
	case AlreadyConsumed:
		return "AlreadyConsumed"
	default:
		return "Unknown"
	}
}

// Feature describes which parts of a view node a handler wants to claim:
// the node itself (Name), specific attributes, specific classes, or any
// combination. Zero or more of each may be set; all listed parts are
// treated as one atomic claim.
type Feature struct {
	Name       bool
	Attributes []string
	Classes    []string
}

// NameFeature is the claim on the node itself.
func NameFeature() Feature { return Feature{Name: true} }

// AttributeFeature is the claim on a single attribute.
func AttributeFeature(key string) Feature { return Feature{Attributes: []string{key}} }

// ClassFeature is the claim on a single class name.
func ClassFeature(name string) Feature { return Feature{Classes: []string{name}} }

// ViewConsumable tracks which view node features have been claimed
// during one upcast pass. It is the sole shared state between handlers;
// its all-or-nothing Consume prevents two handlers from both believing
// they own the same feature.
type ViewConsumable struct {
	consumed map[string]map[string]struct{} // node ID -> feature token
}

// NewViewConsumable creates an empty gate for a fresh pass.
func NewViewConsumable() *ViewConsumable {
	return &ViewConsumable{consumed: make(map[string]map[string]struct{})}
}

// tokens resolves the feature to claim tokens. ok is false when the node
// does not actually carry one of the requested features.
func tokens(n view.Node, f Feature) (out []string, ok bool) {
	el, isElement := n.(*view.Element)
	if f.Name {
		out = append(out, "name")
	}
	if len(f.Attributes) > 0 || len(f.Classes) > 0 {
		if !isElement {
			return nil, false
		}
		for _, key := range f.Attributes {
			if !el.HasAttribute(key) {
				return nil, false
			}
			out = append(out, "attribute:"+key)
		}
		for _, name := range f.Classes {
			if !el.HasClass(name) {
				return nil, false
			}
			out = append(out, "class:"+name)
		}
	}
	return out, true
}

// Test non-destructively checks that ALL listed features on the node are
// present and still unconsumed.
func (c *ViewConsumable) Test(n view.Node, f Feature) bool {
	toks, ok := tokens(n, f)
	if !ok {
		return false
	}
	claimed := c.consumed[n.ID()]
	for _, tok := range toks {
		if _, done := claimed[tok]; done {
			return false
		}
	}
	return true
}

// Consume atomically claims all listed features. If any feature is
// missing or already claimed the whole call has no effect and
// AlreadyConsumed is returned.
func (c *ViewConsumable) Consume(n view.Node, f Feature) ConsumeResult {
	if !c.Test(n, f) {
		return AlreadyConsumed
	}
	toks, _ := tokens(n, f)
	claimed := c.consumed[n.ID()]
	if claimed == nil {
		claimed = make(map[string]struct{})
		c.consumed[n.ID()] = claimed
	}
	for _, tok := range toks {
		claimed[tok] = struct{}{}
	}
	return Consumed
}

// ModelConsumable tracks which (model node, event) pairs have been
// claimed during one downcast pass. Unlike the view gate there is no
// presence check: the event having fired makes it claimable.
type ModelConsumable struct {
	consumed map[string]map[string]struct{} // node ID -> event name
}

// NewModelConsumable creates an empty gate for a fresh pass.
func NewModelConsumable() *ModelConsumable {
	return &ModelConsumable{consumed: make(map[string]map[string]struct{})}
}

// Test reports whether the event on the node is still unconsumed.
func (c *ModelConsumable) Test(n model.Node, event string) bool {
	_, done := c.consumed[n.ID()][event]
	return !done
}

// Consume claims the event on the node.
func (c *ModelConsumable) Consume(n model.Node, event string) ConsumeResult {
	if !c.Test(n, event) {
		return AlreadyConsumed
	}
	claimed := c.consumed[n.ID()]
	if claimed == nil {
		claimed = make(map[string]struct{})
		c.consumed[n.ID()] = claimed
	}
	claimed[event] = struct{}{}
	return Consumed
}
