package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartmart/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire, so an encode failure cannot
	// be reported to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error onto an HTTP status. Domain errors
// carry their code; anything else becomes an opaque 500 so internal detail
// never leaks to the caller.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		writeError(w, statusForCode(de.Code), de.Code, de.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// statusForCode is the declarative error-code to status mapping.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeCartNotFound,
		model.ErrCodeProductNotInCart,
		model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodePaymentNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeOutOfStock,
		model.ErrCodeCartExists,
		model.ErrCodeEmptyCart,
		model.ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case model.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body, reporting a 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// requireFields reports a 400 naming the first missing required field.
// Mutation endpoints validate before touching storage. Arguments are
// name/value pairs checked in order.
func requireFields(w http.ResponseWriter, logger zerolog.Logger, pairs ...string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "missing required field: "+pairs[i], logger)
			return false
		}
	}
	return true
}
