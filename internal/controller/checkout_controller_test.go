package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	domainErrors "github.com/cassiomorais/checkout/internal/domain/errors"
	"github.com/cassiomorais/checkout/internal/infrastructure/observability"
	"github.com/cassiomorais/checkout/internal/payclient"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitCall struct {
	amount        float64
	authCode      string
	storeAmount   string
	storeStatus   string
	ctxCancelable bool
}

// fakeSubmitter records calls and the store state observed at call time.
type fakeSubmitter struct {
	mu     sync.Mutex
	store  *session.Store
	calls  []submitCall
	result payclient.Result
	err    error
}

func (f *fakeSubmitter) SubmitPayment(ctx context.Context, amount float64, authCode string) (payclient.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, submitCall{
		amount:        amount,
		authCode:      authCode,
		storeAmount:   f.store.Amount(),
		storeStatus:   f.store.PaymentStatus(),
		ctxCancelable: ctx.Done() != nil,
	})
	return f.result, f.err
}

func newCheckout(t *testing.T, result payclient.Result, err error) (*CheckoutController, *fakeSubmitter, *session.Store, *observability.Metrics) {
	t.Helper()
	store := session.NewStore()
	fake := &fakeSubmitter{store: store, result: result, err: err}
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	return NewCheckoutController(fake, store, metrics, zerolog.Nop()), fake, store, metrics
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCheckoutController_Submit_JSONSuccess(t *testing.T) {
	h, fake, store, metrics := newCheckout(t, payclient.Result(`{"status":"ok","id":"tx_1"}`), nil)
	store.SetPaymentStatus("previous failure")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := httptest.NewRecorder()
	h.Submit(rec, jsonRequest(`{"amount":100,"authCode":"abc123"}`).WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"status":"payment succeeded","result":{"status":"ok","id":"tx_1"}}`, rec.Body.String())

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, 100.0, call.amount)
	assert.Equal(t, "abc123", call.authCode)
	assert.Equal(t, "100", call.storeAmount, "amount is recorded before the request")
	assert.Equal(t, "previous failure", call.storeStatus, "status is written only after the request")
	assert.False(t, call.ctxCancelable, "client disconnects must not cancel the payment")

	assert.Equal(t, session.Snapshot{Amount: "100", PaymentStatus: StatusSucceeded}, store.Snapshot())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PaymentSubmissionsTotal.WithLabelValues(observability.OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlightSubmissions))
}

func TestCheckoutController_Submit_JSONServerMessage(t *testing.T) {
	paymentErr := domainErrors.NewPaymentError("invalid amount", http.StatusBadRequest, domainErrors.ErrPaymentRejected)
	h, fake, store, metrics := newCheckout(t, nil, paymentErr)

	rec := httptest.NewRecorder()
	h.Submit(rec, jsonRequest(`{"amount":-5,"authCode":"abc123"}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid amount", resp.Error)
	assert.Equal(t, "payment_failed", resp.Code)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, -5.0, fake.calls[0].amount)
	assert.Equal(t, session.Snapshot{Amount: "-5", PaymentStatus: "invalid amount"}, store.Snapshot())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PaymentSubmissionsTotal.WithLabelValues(observability.OutcomeFailure)))
}

func TestCheckoutController_Submit_ValidationFailure(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
		storeAmount   string
	}{
		{"non-numeric amount", `{"amount":"ten","authCode":"abc"}`, "amount", "ten"},
		{"missing auth code", `{"amount":"10"}`, "authCode", "10"},
		{"missing amount", `{"authCode":"abc"}`, "amount", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fake, store, _ := newCheckout(t, nil, nil)

			rec := httptest.NewRecorder()
			h.Submit(rec, jsonRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "validation_error", resp.Code)
			assert.Contains(t, resp.Error, tt.expectedField)

			assert.Empty(t, fake.calls)
			assert.Equal(t, tt.storeAmount, store.Amount())
			assert.Equal(t, resp.Error, store.PaymentStatus())
		})
	}
}

func TestCheckoutController_Submit_MalformedJSONLeavesStore(t *testing.T) {
	h, fake, store, _ := newCheckout(t, nil, nil)
	store.SetAmount("7")

	rec := httptest.NewRecorder()
	h.Submit(rec, jsonRequest(`{"amount":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.calls)
	assert.Equal(t, session.Snapshot{Amount: "7"}, store.Snapshot())
}

func TestCheckoutController_Submit_Form(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus string
	}{
		{"success", nil, StatusSucceeded},
		{"failure", domainErrors.NewPaymentError("", 0, domainErrors.ErrPaymentTimeout), domainErrors.FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fake, store, _ := newCheckout(t, payclient.Result(`{}`), tt.err)

			form := url.Values{"amount": {"25"}, "authCode": {"abc123"}}
			req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			h.Submit(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/payment", rec.Header().Get("Location"))
			require.Len(t, fake.calls, 1)
			assert.Equal(t, session.Snapshot{Amount: "25", PaymentStatus: tt.expectedStatus}, store.Snapshot())
		})
	}
}

func TestCheckoutController_Status(t *testing.T) {
	h, _, store, _ := newCheckout(t, nil, nil)
	store.SetAmount("100")
	store.SetPaymentStatus(StatusSucceeded)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/payment/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, store.ID().String(), resp.SessionID)
	assert.Equal(t, "100", resp.Amount)
	assert.Equal(t, StatusSucceeded, resp.PaymentStatus)
}

func TestCheckoutController_Submit_LogsSessionFields(t *testing.T) {
	var logs bytes.Buffer
	store := session.NewStore()
	fake := &fakeSubmitter{store: store, result: payclient.Result(`{}`)}
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	h := NewCheckoutController(fake, store, metrics, zerolog.New(&logs))

	rec := httptest.NewRecorder()
	h.Submit(rec, jsonRequest(`{"amount":"12.5","authCode":"abc123"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	out := logs.String()
	assert.Contains(t, out, `"session_id":"`+store.ID().String()+`"`)
	assert.Contains(t, out, `"amount":12.5`)
	assert.Contains(t, out, `"elapsed":`)
	assert.Contains(t, out, "Payment succeeded")
}

func TestParseSubmission_RawInput(t *testing.T) {
	amount, err := ParseSubmission("-5", "abc123")
	require.NoError(t, err)
	assert.Equal(t, -5.0, amount)

	for _, raw := range []string{"1e3", "NaN", "0x10", "Inf", " 10"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseSubmission(raw, "abc123")
			var verr *domainErrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "amount", verr.Field)
		})
	}
}
