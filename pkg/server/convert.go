package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/middleware"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

const maxBodyBytes = 4 << 20

type upcastResponse struct {
	Model    *model.Element `json:"model"`
	Declined []string       `json:"declined,omitempty"`
}

type roundtripResponse struct {
	Model    *model.Element `json:"model"`
	Declined []string       `json:"declined,omitempty"`
	Patches  []view.Patch   `json:"patches,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) decodeView(w http.ResponseWriter, r *http.Request) (view.Node, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "reading body: " + err.Error()})
		return nil, false
	}
	node, err := view.Decode(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return node, true
}

// handleUpcast converts a view tree JSON document into a model tree.
func (s *Server) handleUpcast(w http.ResponseWriter, r *http.Request) {
	node, ok := s.decodeView(w, r)
	if !ok {
		return
	}

	start := time.Now()
	c := s.newConversion()
	result := c.Upcast.Convert(node)
	middleware.RecordConversion("upcast", len(result.Declined), time.Since(start))

	writeJSON(w, http.StatusOK, upcastResponse{
		Model:    result.Root,
		Declined: result.Declined,
	})
}

// handleRoundtrip upcasts the view tree, then downcasts every produced
// model attribute back onto the bound view elements and reports the
// resulting patch stream. A converter that loses information shows up as
// a patch differing from the original attribute.
func (s *Server) handleRoundtrip(w http.ResponseWriter, r *http.Request) {
	node, ok := s.decodeView(w, r)
	if !ok {
		return
	}

	start := time.Now()
	c := s.newConversion()
	result := c.Upcast.Convert(node)

	writer := view.NewWriter()
	c.Downcast.Convert(collectAttributeChanges(result.Root), writer)
	middleware.RecordConversion("roundtrip", len(result.Declined), time.Since(start))
	middleware.RecordPatches(len(writer.Patches()))

	writeJSON(w, http.StatusOK, roundtripResponse{
		Model:    result.Root,
		Declined: result.Declined,
		Patches:  writer.Patches(),
	})
}

// collectAttributeChanges walks the model tree and reports every present
// attribute as a fresh set, the shape an editing session produces when
// it replays a document's attributes.
func collectAttributeChanges(root *model.Element) []conversion.AttributeChange {
	var changes []conversion.AttributeChange
	var walk func(el *model.Element)
	walk = func(el *model.Element) {
		for _, key := range el.AttributeKeys() {
			val, _ := el.Attribute(key)
			changes = append(changes, conversion.AttributeChange{Item: el, Key: key, New: val})
		}
		for _, child := range el.Children() {
			if childEl, ok := child.(*model.Element); ok {
				walk(childEl)
			}
		}
	}
	walk(root)
	return changes
}
