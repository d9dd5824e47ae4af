package api

import (
	"errors"
	"net/http"

	service "github.com/okian/scoreboard/internal/app"
	"github.com/okian/scoreboard/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Error codes carried in error bodies.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codePersistenceFailed = "persistence_failed"
	codeInternal          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrValidation), errors.Is(err, model.ErrNotANumber):
		return http.StatusBadRequest, codeValidationFailed
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrPayloadTooLarge):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrPersistence):
		return http.StatusInternalServerError, codePersistenceFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
