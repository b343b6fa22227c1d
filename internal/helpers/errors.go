package helpers

import (
	"errors"
	"net/http"
)

var (
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidMediaType    = errors.New("invalid media type")
	ErrNotFound            = errors.New("not found")
	ErrPayloadTooLarge     = errors.New("payload too large")
)

// StatusFor maps an error from the store or service layer to the HTTP status
// the client should see. Unknown errors are server faults.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMalformedIdentifier), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether err is caused by the request rather than the server.
func IsClientError(err error) bool {
	status := StatusFor(err)
	return status >= 400 && status < 500
}
