package blog

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no post has the requested identifier.
	ErrNotFound = errors.New("blog not found")

	// ErrInvalidID indicates an identifier the active store could never have issued.
	ErrInvalidID = errors.New("malformatted id")
)

// ClassifyError maps blog errors onto HTTP statuses. It satisfies
// responder.ErrorClassifierFunc.
func ClassifyError(err error) (int, bool) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	default:
		return 0, false
	}
}
