// Package middleware provides net/http middleware for the EditKit
// conversion service: Prometheus metrics, OpenTelemetry tracing and
// structured request logging.
//
// The middlewares compose with any chi (or stdlib) router:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Logging(nil))
//	r.Use(middleware.Metrics())
//	r.Use(middleware.Tracing())
//
// Conversion-level metrics (passes, declined nodes, emitted patches) are
// recorded by the server through RecordConversion and RecordPatches.
package middleware
