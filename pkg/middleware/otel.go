package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for EditKit services.
const defaultTracerName = "editkit"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "editkit").
	TracerName string

	// Filter determines which requests to trace. Return true to trace.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// Tracing creates middleware that opens a span per request and records
// the response status. The tracer comes from the global OpenTelemetry
// tracer provider; configure it in main() before starting the server.
func Tracing(opts ...TracingOption) func(http.Handler) http.Handler {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := config.tracer.Start(
				r.Context(),
				fmt.Sprintf("editkit %s %s", r.Method, r.URL.Path),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}
