package payclient

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// PaymentRequest is the body sent to the payment endpoint.
type PaymentRequest struct {
	Amount   float64 `json:"amount"`
	AuthCode string  `json:"authCode"`
}

// Result is the server payload of a successful payment, kept as the raw
// bytes the server sent. It is not validated against any schema.
type Result []byte

// Decode unmarshals the payload into v.
func (r Result) Decode(v any) error {
	return jsonAPI.Unmarshal(r, v)
}

// Map decodes the payload as a JSON object.
func (r Result) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalJSON embeds the payload verbatim. Payloads that are not valid JSON
// are emitted as a JSON string.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	if !jsonAPI.Valid(r) {
		return jsonAPI.Marshal(string(r))
	}
	return r, nil
}

func (r Result) String() string {
	return string(r)
}

// Outcome is the settled value of an asynchronous submission.
type Outcome struct {
	Result Result
	Err    error
}

// extractResult returns the value of the "data" field when the body is a JSON
// object carrying one, and the whole body otherwise.
func extractResult(body []byte) Result {
	var envelope map[string]jsoniter.RawMessage
	if err := jsonAPI.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			return Result(data)
		}
	}
	out := make([]byte, len(body))
	copy(out, body)
	return Result(out)
}

// serverMessage returns the "message" of an error body as display text, or ""
// when it is absent, empty, zero, false, null or not a scalar.
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := jsonAPI.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch msg := payload["message"].(type) {
	case string:
		return msg
	case float64:
		if msg == 0 {
			return ""
		}
		return strconv.FormatFloat(msg, 'f', -1, 64)
	case bool:
		if msg {
			return "true"
		}
	}
	return ""
}
