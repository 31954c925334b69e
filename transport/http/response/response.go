package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/logger"
)

const internalErrorMessage = "something went wrong, please try again"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends the failure message for domain errors. Anything else is logged
// and answered with a generic 500.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		logger.ErrorWithStack(err)

		errMsg := internalErrorMessage
		response(writer, http.StatusInternalServerError, Error{Error: &errMsg})

		return
	}

	response(writer, fail.Code, Error{Error: &fail.Message})
}

// WithPage sends a JSON object alongside a message, used for valid empty results.
func WithPage(writer http.ResponseWriter, code int, message string, jsonPayload any) {
	response(writer, code, struct {
		Data    *any    `json:"data,omitempty"`
		Message *string `json:"message,omitempty"`
	}{Data: &jsonPayload, Message: &message})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
