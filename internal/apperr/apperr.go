package apperr

import (
	"errors"
	"net/http"
)

// Failure kinds raised by the services and the guard. Everything that can
// reach a handler is one of these; anything else is reported as an internal
// error with no detail attached.
var (
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("token expired")
	ErrMissingToken       = errors.New("missing or malformed authorization header")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenRole      = errors.New("access denied, admin role required")
	ErrNotOwner           = errors.New("access denied, not the resource owner")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
)

// Envelope is the uniform response body for every outcome.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(status int, message string, data any) Envelope {
	return Envelope{Status: status, Message: message, Data: data}
}

// Report maps a failure kind to its user-safe envelope. Unknown errors fall
// through to a generic 500 so store or driver detail never leaks out.
func Report(err error) Envelope {
	switch {
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrExpiredToken):
		return Envelope{Status: http.StatusUnauthorized, Message: "Invalid token."}
	case errors.Is(err, ErrInvalidCredentials):
		return Envelope{Status: http.StatusUnauthorized, Message: ErrInvalidCredentials.Error()}
	case errors.Is(err, ErrForbiddenRole), errors.Is(err, ErrNotOwner):
		return Envelope{Status: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrCommentNotFound):
		return Envelope{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrPasswordMismatch):
		return Envelope{Status: http.StatusBadRequest, Message: err.Error()}
	default:
		return Envelope{Status: http.StatusInternalServerError, Message: "An error occurred"}
	}
}

// Fields reports request validation failures as a field->message map in the
// envelope data, distinct from the single-message domain failures.
func Fields(errs map[string]string) Envelope {
	return Envelope{
		Status:  http.StatusBadRequest,
		Message: "Your request contains invalid data. Please correct the following fields and try again.",
		Data:    errs,
	}
}
