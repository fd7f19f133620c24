package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// RecordedRequest is one call the fake backend received.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// PaymentBackend is an httptest server standing in for the payment API.
type PaymentBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest

	status  int
	body    string
	latency time.Duration
}

type BackendOption func(*PaymentBackend)

// WithResponse sets the status code and raw body returned for every call.
func WithResponse(status int, body string) BackendOption {
	return func(b *PaymentBackend) {
		b.status = status
		b.body = body
	}
}

func WithLatency(d time.Duration) BackendOption {
	return func(b *PaymentBackend) { b.latency = d }
}

// NewPaymentBackend starts a fake backend that answers every request with
// `{"data":{"status":"ok"}}` unless overridden. It is closed on test cleanup.
func NewPaymentBackend(t testing.TB, opts ...BackendOption) *PaymentBackend {
	t.Helper()
	b := &PaymentBackend{
		status: http.StatusOK,
		body:   `{"data":{"status":"ok"}}`,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *PaymentBackend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(raw),
	})
	b.mu.Unlock()

	if b.latency > 0 {
		select {
		case <-time.After(b.latency):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.status)
	_, _ = io.WriteString(w, b.body)
}

// Requests returns a copy of everything received so far.
func (b *PaymentBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}
