// Package types holds the wire envelopes shared by every JSON endpoint.
package types

// SuccessEnvelope wraps every successful JSON body under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Details carries field-level
// context (for example the offending user_email) only when the error code
// permits exposing it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
