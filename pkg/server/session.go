package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/middleware"
	"github.com/editkit-dev/editkit/pkg/model"
	"github.com/editkit-dev/editkit/pkg/view"
)

// sessionFrame is one client message on the live session socket.
type sessionFrame struct {
	Type string `json:"type"`

	// bind
	View json.RawMessage `json:"view,omitempty"`

	// set
	NodeID string          `json:"nodeId,omitempty"`
	Key    string          `json:"key,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// sessionReply is one server message on the live session socket.
type sessionReply struct {
	Type     string         `json:"type"`
	Model    *model.Element `json:"model,omitempty"`
	Declined []string       `json:"declined,omitempty"`
	Patches  []view.Patch   `json:"patches,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// handleSession runs a live conversion session over a WebSocket. The
// client first binds a view document, which is upcast once; subsequent
// set frames mutate model attributes and stream back the view patches
// the downcast converters emit.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("session upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	middleware.RecordSessionOpen()
	defer middleware.RecordSessionClose()
	s.logger.Info("session opened", "remote", r.RemoteAddr)

	c := s.newConversion()
	var root *model.Element
	writer := model.NewWriter()

	for {
		var frame sessionFrame
		if err := conn.ReadJSON(&frame); err != nil {
			s.logger.Info("session closed", "remote", r.RemoteAddr)
			return
		}

		var reply sessionReply
		switch frame.Type {
		case "bind":
			reply = s.bindSession(c, frame, &root)
		case "set":
			reply = s.applySet(c, writer, root, frame)
		default:
			reply = sessionReply{Type: "error", Error: "unknown frame type " + frame.Type}
		}

		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("session write failed", "error", err)
			return
		}
	}
}

// bindSession upcasts the frame's view document and retains the result as
// the session's model state.
func (s *Server) bindSession(c *conversion.Conversion, frame sessionFrame, root **model.Element) sessionReply {
	node, err := view.Decode(frame.View)
	if err != nil {
		return sessionReply{Type: "error", Error: err.Error()}
	}

	start := time.Now()
	result := c.Upcast.Convert(node)
	middleware.RecordConversion("upcast", len(result.Declined), time.Since(start))
	*root = result.Root

	return sessionReply{Type: "bound", Model: result.Root, Declined: result.Declined}
}

// applySet mutates one model attribute and downcasts the change, replying
// with the view patches it produced.
func (s *Server) applySet(c *conversion.Conversion, writer *model.Writer, root *model.Element, frame sessionFrame) sessionReply {
	if root == nil {
		return sessionReply{Type: "error", Error: "no document bound"}
	}
	el := findElement(root, frame.NodeID)
	if el == nil {
		return sessionReply{Type: "error", Error: "unknown node " + frame.NodeID}
	}
	value, err := model.ValueFromJSON(frame.Value)
	if err != nil {
		return sessionReply{Type: "error", Error: err.Error()}
	}

	old, _ := el.Attribute(frame.Key)
	if value == nil {
		writer.RemoveAttribute(frame.Key, el)
	} else {
		writer.SetAttribute(frame.Key, value, el)
	}

	viewWriter := view.NewWriter()
	c.Downcast.ConvertAttribute(conversion.AttributeChange{
		Item: el,
		Key:  frame.Key,
		Old:  old,
		New:  value,
	}, viewWriter)
	middleware.RecordPatches(len(viewWriter.Patches()))

	return sessionReply{Type: "patches", Patches: viewWriter.Patches()}
}

// findElement walks the model tree for the element with the given ID.
func findElement(root *model.Element, id string) *model.Element {
	if root.ID() == id {
		return root
	}
	for _, child := range root.Children() {
		el, ok := child.(*model.Element)
		if !ok {
			continue
		}
		if found := findElement(el, id); found != nil {
			return found
		}
	}
	return nil
}
