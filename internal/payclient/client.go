// Package payclient submits payments to the checkout backend and normalizes
// every failure into a single *errors.PaymentError.
package payclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/cassiomorais/checkout/internal/domain/errors"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTimeout bounds every payment request.
	DefaultTimeout = 5 * time.Second
	// PayPath is the payment endpoint, relative to the base URL.
	PayPath = "/api/pay"
)

const tracerName = "github.com/cassiomorais/checkout/internal/payclient"

// Client issues payment requests against one backend.
type Client struct {
	http    *resty.Client
	baseURL string
	tracer  trace.Tracer
}

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport sets the round tripper wrapped by the client's instrumentation.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a Client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidBaseURL, baseURL)
	}

	o := options{
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := strings.TrimRight(baseURL, "/")
	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(o.timeout).
		SetTransport(otelhttp.NewTransport(o.transport)).
		SetHeader("Content-Type", "application/json").
		SetDisableWarn(true)

	return &Client{
		http:    rc,
		baseURL: base,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// SubmitPayment sends one POST to PayPath and returns the server payload.
// It never retries. Any failure is returned as *errors.PaymentError whose
// message is the server's "message" field or errors.FallbackMessage.
func (c *Client) SubmitPayment(ctx context.Context, amount float64, authCode string) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "payclient.SubmitPayment")
	defer span.End()

	result, err := c.submit(ctx, amount, authCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var pe *domainErrors.PaymentError
		if errors.As(err, &pe) && pe.StatusCode != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", pe.StatusCode))
		}
		return nil, err
	}
	return result, nil
}

// SubmitPaymentAsync runs SubmitPayment in the background. The returned
// channel yields exactly one Outcome and is then closed.
func (c *Client) SubmitPaymentAsync(ctx context.Context, amount float64, authCode string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := c.SubmitPayment(ctx, amount, authCode)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}

func (c *Client) submit(ctx context.Context, amount float64, authCode string) (Result, error) {
	body, err := jsonAPI.Marshal(PaymentRequest{Amount: amount, AuthCode: authCode})
	if err != nil {
		return nil, domainErrors.NewPaymentError("", 0,
			fmt.Errorf("%w: encode request: %w", domainErrors.ErrPaymentTransport, err))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(PayPath)
	if err != nil {
		return nil, domainErrors.NewPaymentError("", 0, classify(err))
	}

	if !resp.IsSuccess() {
		return nil, domainErrors.NewPaymentError(
			serverMessage(resp.Body()),
			resp.StatusCode(),
			fmt.Errorf("%w: status %d", domainErrors.ErrPaymentRejected, resp.StatusCode()),
		)
	}

	return extractResult(resp.Body()), nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", domainErrors.ErrPaymentTimeout, err)
	}
	return fmt.Errorf("%w: %w", domainErrors.ErrPaymentTransport, err)
}
