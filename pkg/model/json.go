package model

import (
	"encoding/json"
	"fmt"
)

// attrJSON is the transport encoding of one typed attribute.
type attrJSON struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"` // scalar
	Data  string `json:"data,omitempty"`  // srcset
	Width string `json:"width,omitempty"` // srcset
}

// nodeJSON is the transport encoding shared by the marshalers.
type nodeJSON struct {
	Kind       string     `json:"kind"`
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Attributes []attrJSON `json:"attributes,omitempty"`
	Children   []nodeJSON `json:"children,omitempty"`
	Text       string     `json:"text,omitempty"`
}

func valueToJSON(key string, v Value) attrJSON {
	switch val := v.(type) {
	case Scalar:
		return attrJSON{Key: key, Kind: "scalar", Value: string(val)}
	case Srcset:
		return attrJSON{Key: key, Kind: "srcset", Data: val.Data, Width: val.Width}
	default:
		return attrJSON{Key: key, Kind: "scalar"}
	}
}

// ValueFromJSON decodes a typed attribute value from its transport
// encoding. A JSON null decodes to a nil Value (attribute removal).
func ValueFromJSON(data []byte) (Value, error) {
	if string(data) == "null" {
		return nil, nil
	}
	var in attrJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("model: decode value: %w", err)
	}
	switch in.Kind {
	case "scalar", "":
		return Scalar(in.Value), nil
	case "srcset":
		return Srcset{Data: in.Data, Width: in.Width}, nil
	default:
		return nil, fmt.Errorf("model: unknown value kind %q", in.Kind)
	}
}

func toJSON(n Node) nodeJSON {
	switch v := n.(type) {
	case *Element:
		out := nodeJSON{Kind: "element", ID: v.ID(), Name: v.Name()}
		for _, key := range v.AttributeKeys() {
			val, _ := v.Attribute(key)
			out.Attributes = append(out.Attributes, valueToJSON(key, val))
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

// MarshalJSON implements json.Marshaler.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(e))
}

// MarshalJSON implements json.Marshaler.
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(t))
}
