package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	domainErrors "github.com/cassiomorais/checkout/internal/domain/errors"
	"github.com/cassiomorais/checkout/internal/infrastructure/observability"
	"github.com/cassiomorais/checkout/internal/navigation"
	"github.com/cassiomorais/checkout/internal/payclient"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/rs/zerolog"
)

// StatusSucceeded is written to the session store after a successful payment.
const StatusSucceeded = "payment succeeded"

// PaymentSubmitter sends one payment to the backend.
type PaymentSubmitter interface {
	SubmitPayment(ctx context.Context, amount float64, authCode string) (payclient.Result, error)
}

// CheckoutController drives a payment submission and mirrors its outcome
// into the session store.
type CheckoutController struct {
	client  PaymentSubmitter
	store   *session.Store
	metrics *observability.Metrics
	logger  zerolog.Logger
}

// NewCheckoutController creates a new CheckoutController.
func NewCheckoutController(
	client PaymentSubmitter,
	store *session.Store,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *CheckoutController {
	return &CheckoutController{
		client:  client,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Submit handles POST /payment.
//
// The amount is recorded before the request is sent and the status after it
// settles. JSON clients get the outcome in the response; form posts are
// redirected back to the payment view.
func (h *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSONRequest(r)

	var req SubmitPaymentRequest
	if err := decodeSubmission(r, &req); err != nil {
		h.respondError(w, r, asJSON, err)
		return
	}

	h.store.SetAmount(string(req.Amount))

	amount, err := parseSubmission(&req)
	if err != nil {
		h.store.SetPaymentStatus(err.Error())
		h.respondError(w, r, asJSON, err)
		return
	}

	// Leaving the page does not abort a payment already on the wire; the
	// client timeout still bounds it.
	result, err := h.submit(context.WithoutCancel(r.Context()), amount, req.AuthCode)
	if err != nil {
		h.store.SetPaymentStatus(err.Error())
		h.respondError(w, r, asJSON, err)
		return
	}

	h.store.SetPaymentStatus(StatusSucceeded)
	if !asJSON {
		redirectToPayment(w, r)
		return
	}
	writeJSON(w, http.StatusOK, SubmitPaymentResponse{Status: StatusSucceeded, Result: result})
}

// Status handles GET /payment/status
func (h *CheckoutController) Status(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, StatusResponse{
		SessionID:     h.store.ID().String(),
		Amount:        snap.Amount,
		PaymentStatus: snap.PaymentStatus,
	})
}

func (h *CheckoutController) submit(ctx context.Context, amount float64, authCode string) (payclient.Result, error) {
	h.metrics.InFlightSubmissions.Inc()
	defer h.metrics.InFlightSubmissions.Dec()

	start := time.Now()
	result, err := h.client.SubmitPayment(ctx, amount, authCode)
	elapsed := time.Since(start)

	logger := observability.WithContext(h.logger, map[string]any{
		"session_id": h.store.ID(),
		"amount":     amount,
		"elapsed":    elapsed,
	})

	if err != nil {
		h.metrics.ObserveSubmission(observability.OutcomeFailure, elapsed)
		logger.Warn().Err(err).Msg("Payment failed")
		return nil, err
	}

	h.metrics.ObserveSubmission(observability.OutcomeSuccess, elapsed)
	logger.Info().Msg("Payment succeeded")
	return result, nil
}

func (h *CheckoutController) respondError(w http.ResponseWriter, r *http.Request, asJSON bool, err error) {
	if asJSON {
		writeError(w, err)
		return
	}
	redirectToPayment(w, r)
}

// ParseSubmission applies the POST /payment input rules to a raw amount and
// auth code and returns the amount to send.
func ParseSubmission(rawAmount, authCode string) (float64, error) {
	return parseSubmission(&SubmitPaymentRequest{Amount: AmountInput(rawAmount), AuthCode: authCode})
}

func parseSubmission(req *SubmitPaymentRequest) (float64, error) {
	if err := validateStruct(req); err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(string(req.Amount), 64)
	if err != nil {
		return 0, domainErrors.NewValidationError("amount", "not a representable number")
	}
	return amount, nil
}

func redirectToPayment(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, navigation.MustPath(navigation.ViewPayment), http.StatusSeeOther)
}
