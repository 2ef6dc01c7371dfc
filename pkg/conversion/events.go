package conversion

import "github.com/editkit-dev/editkit/pkg/view"

// TextEvent is the upcast event fired for view text nodes.
const TextEvent = "text"

// ElementEvent returns the upcast event name for a view element tag,
// e.g. "element:figure".
func ElementEvent(name string) string {
	return "element:" + name
}

// AttributeEvent returns the downcast event name for a model attribute
// change, e.g. "attribute:srcset:image".
func AttributeEvent(key, elementName string) string {
	return "attribute:" + key + ":" + elementName
}

// eventFor maps a view node to its upcast event name.
func eventFor(n view.Node) string {
	if e, ok := n.(*view.Element); ok {
		return ElementEvent(e.Name())
	}
	return TextEvent
}
