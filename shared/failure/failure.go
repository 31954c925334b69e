// Package failure carries client-facing errors. The HTTP layer answers with
// Code and Message; anything that is not a Failure becomes a 500.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ForbiddenError is returned when the session role is not allowed on a route.
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "hotel not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict reports a write that lost against existing state, such as an
// overlapping reservation or a duplicate email.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
