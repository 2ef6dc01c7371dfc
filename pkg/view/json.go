package view

import (
	"encoding/json"
	"fmt"
)

// nodeJSON is the transport encoding shared by Encode and Decode.
type nodeJSON struct {
	Kind       string     `json:"kind"`
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Attributes []Attr     `json:"attributes,omitempty"`
	Classes    []string   `json:"classes,omitempty"`
	Children   []nodeJSON `json:"children,omitempty"`
	Text       string     `json:"text,omitempty"`
}

func toJSON(n Node) nodeJSON {
	switch v := n.(type) {
	case *Element:
		out := nodeJSON{Kind: "element", ID: v.ID(), Name: v.Name(), Classes: v.ClassNames()}
		for _, key := range v.AttributeKeys() {
			val, _ := v.Attribute(key)
			out.Attributes = append(out.Attributes, Attr{Key: key, Value: val})
		}
		for _, child := range v.Children() {
			out.Children = append(out.Children, toJSON(child))
		}
		return out
	case *Text:
		return nodeJSON{Kind: "text", ID: v.ID(), Text: v.Data}
	default:
		return nodeJSON{}
	}
}

func fromJSON(in nodeJSON) (Node, error) {
	switch in.Kind {
	case "element":
		if in.Name == "" {
			return nil, fmt.Errorf("view: element without a name")
		}
		e := NewElement(in.Name, in.Attributes...)
		for _, name := range in.Classes {
			e.classes[name] = struct{}{}
		}
		for _, child := range in.Children {
			node, err := fromJSON(child)
			if err != nil {
				return nil, err
			}
			e.AppendChild(node)
		}
		return e, nil
	case "text":
		return NewText(in.Text), nil
	default:
		return nil, fmt.Errorf("view: unknown node kind %q", in.Kind)
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(e))
}

// MarshalJSON implements json.Marshaler.
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(t))
}

// Decode parses the JSON transport encoding into a view tree. Decoded
// nodes receive fresh IDs; the encoding's id field is informational only.
func Decode(data []byte) (Node, error) {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("view: decode: %w", err)
	}
	return fromJSON(in)
}
