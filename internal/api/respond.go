// Package api is the HTTP layer: route registration, request decoding and
// the JSON response envelope.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/logger"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.New().WithError(err).Error("failed to encode response")
	}
}

func respondOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	status := statusForKind(apperrors.KindOf(err))
	code := apperrors.CodeOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.New().WithError(err).Error("request failed")
		code = "INTERNAL_ERROR"
		message = "an internal error occurred"
	}
	writeJSON(w, status, Response{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}

func respondUnauthorized(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}

func respondBadRequest(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInvalid:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decode reads the JSON body into dst; a false return means the error
// response has already been written.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondBadRequest(w, "INVALID_BODY", "request body is not valid JSON")
		return false
	}
	return true
}

// decodeOptional tolerates an empty or malformed body.
func decodeOptional(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
