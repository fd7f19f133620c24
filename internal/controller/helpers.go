package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	domainErrors "github.com/cassiomorais/checkout/internal/domain/errors"
	"github.com/go-playground/validator/v10"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	// The payment backend failed or refused; the message is already
	// normalized for display.
	var paymentErr *domainErrors.PaymentError
	if errors.As(err, &paymentErr) {
		resp.Code = "payment_failed"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

// decodeSubmission reads a JSON body or an HTML form into dst without
// validating it.
func decodeSubmission(r *http.Request, dst *SubmitPaymentRequest) error {
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return domainErrors.NewValidationError("body", "invalid form: "+err.Error())
	}
	dst.Amount = AmountInput(strings.TrimSpace(r.PostFormValue("amount")))
	dst.AuthCode = strings.TrimSpace(r.PostFormValue("authCode"))
	return nil
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
