package model

// Value is a model attribute value: either a Scalar string or a
// composite record. The closed union lets converters type-switch
// exhaustively instead of sniffing the shape at runtime.
type Value interface {
	isValue()
}

// Scalar is a plain string attribute value.
type Scalar string

func (Scalar) isValue() {}

// Srcset is the composite responsive-image descriptor. Data holds the
// raw candidate list; Width is the rendered width and is absent when
// empty. A Srcset with no Data is a valid "nothing to materialize"
// state, not an error.
type Srcset struct {
	Data  string `json:"data,omitempty"`
	Width string `json:"width,omitempty"`
}

func (Srcset) isValue() {}

// HasData reports whether the descriptor carries candidate data.
func (s Srcset) HasData() bool { return s.Data != "" }

// HasWidth reports whether the descriptor carries a width.
func (s Srcset) HasWidth() bool { return s.Width != "" }
