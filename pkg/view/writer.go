package view

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetAttr     PatchOp = 0x01 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x02 // Remove attribute
	PatchAddClass    PatchOp = 0x03 // Add class name
	PatchRemoveClass PatchOp = 0x04 // Remove class name
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	default:
		return "Unknown"
	}
}

// Patch is a single view mutation, addressed by node ID.
type Patch struct {
	Op     PatchOp `json:"op"`
	NodeID string  `json:"nodeId"`
	Key    string  `json:"key,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// Writer applies mutations to view elements and records a patch per
// applied change. Converters receive a Writer instead of mutating nodes
// directly, so every change made during a conversion pass is observable.
type Writer struct {
	patches []Patch
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// SetAttribute sets the attribute on the element and records the change.
func (w *Writer) SetAttribute(key, value string, e *Element) {
	e.setAttribute(key, value)
	w.patches = append(w.patches, Patch{Op: PatchSetAttr, NodeID: e.ID(), Key: key, Value: value})
}

// RemoveAttribute removes the attribute if present. Removing an absent
// attribute records nothing.
func (w *Writer) RemoveAttribute(key string, e *Element) {
	if e.removeAttribute(key) {
		w.patches = append(w.patches, Patch{Op: PatchRemoveAttr, NodeID: e.ID(), Key: key})
	}
}

// AddClass adds a class name to the element.
func (w *Writer) AddClass(name string, e *Element) {
	if _, ok := e.classes[name]; ok {
		return
	}
	e.classes[name] = struct{}{}
	w.patches = append(w.patches, Patch{Op: PatchAddClass, NodeID: e.ID(), Key: name})
}

// RemoveClass removes a class name from the element.
func (w *Writer) RemoveClass(name string, e *Element) {
	if _, ok := e.classes[name]; !ok {
		return
	}
	delete(e.classes, name)
	w.patches = append(w.patches, Patch{Op: PatchRemoveClass, NodeID: e.ID(), Key: name})
}

// Patches returns the recorded patch stream in application order.
func (w *Writer) Patches() []Patch {
	return w.patches
}

// Reset discards the recorded patches.
func (w *Writer) Reset() {
	w.patches = w.patches[:0]
}
