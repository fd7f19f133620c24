package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request. The span is renamed to
// "METHOD /route/pattern" once chi has matched the route.
func Tracing(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r)
				if span := traceSpan(r); span != nil {
					if route := routePattern(r); route != unmatchedRoute {
						span.SetName(r.Method + " " + route)
					}
				}
			}),
			service,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

func traceSpan(r *http.Request) trace.Span {
	span := trace.SpanFromContext(r.Context())
	if !span.IsRecording() {
		return nil
	}
	return span
}
