package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
)

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteError writes err as a JSON error body and returns the status used.
// Internal errors are reported without their cause.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	code := apperr.GetCode(err)
	msg := apperr.UserMessage(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	_ = WriteJSON(w, status, errorEnvelope{Error: ErrorBody{Code: code, Message: msg}})
	return status
}

// StatusFor maps err to an HTTP status code.
func StatusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch apperr.ClassOf(err) {
	case apperr.ClassInvalid:
		return http.StatusBadRequest
	case apperr.ClassNotFound:
		return http.StatusNotFound
	case apperr.ClassUnavailable:
		if apperr.Is(err, apperr.ErrCodeTimeout) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
