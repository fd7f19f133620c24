package controller

import (
	"github.com/cassiomorais/checkout/internal/payclient"
	json "github.com/json-iterator/go"
)

// --- Request DTOs ---

// AmountInput is the amount exactly as the user typed it. JSON clients may
// send it as a number or a string.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	if string(b) == "null" {
		*a = ""
		return nil
	}
	*a = AmountInput(b)
	return nil
}

// SubmitPaymentRequest holds the input of the payment form. The amount is
// checked to be numeric only; its sign and range are left to the backend.
type SubmitPaymentRequest struct {
	Amount   AmountInput `json:"amount" validate:"required,numeric"`
	AuthCode string      `json:"authCode" validate:"required"`
}

// --- Response DTOs ---

// SubmitPaymentResponse is returned to JSON clients on success.
type SubmitPaymentResponse struct {
	Status string           `json:"status"`
	Result payclient.Result `json:"result"`
}

// StatusResponse mirrors the session store.
type StatusResponse struct {
	SessionID     string `json:"sessionId"`
	Amount        string `json:"amount"`
	PaymentStatus string `json:"paymentStatus"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
