// Package server provides the HTTP/WebSocket service for EditKit.
//
// Endpoints:
//
//	POST /v1/upcast    view tree JSON -> model tree JSON
//	POST /v1/roundtrip upcast, then downcast the image attributes back
//	POST /v1/upload    multipart image upload (when a store is configured)
//	GET  /v1/session   WebSocket live session: bind a view document, send
//	                   model attribute changes, receive view patches
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus metrics
//
// Every request runs its conversion as an independent pass with fresh
// gate state; the live session keeps the model/view binding for its
// lifetime so attribute changes can be downcast incrementally.
package server
