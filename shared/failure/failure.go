package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows its HTTP status. Kind is a stable identifier for
// business rule violations, empty for plain request errors.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Is reports whether target is a Failure of the same kind. Failures without a kind only match themselves.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	if e.Kind == "" || other.Kind == "" {
		return e == other
	}

	return e.Kind == other.Kind
}

func New(code int, kind, message string) *Failure {
	return &Failure{Code: code, Kind: kind, Message: message}
}

func withCode(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest keeps a nil error nil so callers can wrap validation results unconditionally.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return withCode(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return withCode(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return withCode(http.StatusForbidden, msg)
}

// NotFound reports a missing entity; msg is shown to the client as is.
func NotFound(msg string) error {
	return withCode(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return withCode(http.StatusConflict, msg)
}

// Unprocessable is for well formed requests that break a business rule.
func Unprocessable(kind, message string) error {
	return New(http.StatusUnprocessableEntity, kind, message)
}

// GetCode returns the status of the first Failure in the chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}
