package complaints

import (
	"errors"
	"net/http"
)

// Domain errors for complaint operations.
var (
	ErrNotFound      = errors.New("complaint not found")
	ErrEmptyText     = errors.New("complaint text is required")
	ErrInvalidStatus = errors.New("status must be open or closed")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidID     = errors.New("invalid complaint id")
	ErrInvalidBody   = errors.New("invalid request body")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// MapHTTPStatus maps complaint domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrEmptyText),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
