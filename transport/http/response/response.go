package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"dipsport/shared/constant"
	"dipsport/shared/failure"
	"dipsport/shared/logger"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error carries the message and, for business rule violations, a stable kind such as SLOT_UNAVAILABLE.
type Error struct {
	Error *string `json:"error,omitempty"`
	Kind  *string `json:"kind,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError renders err with its failure status. Server side errors without a kind are masked
// behind a generic message.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) || (fail.Code >= http.StatusInternalServerError && fail.Kind == "") {
		message := internalErrorMessage
		write(writer, failure.GetCode(err), Error{Error: &message})

		return
	}

	payload := Error{Error: &fail.Message}
	if fail.Kind != "" {
		payload.Kind = &fail.Kind
	}

	write(writer, fail.Code, payload)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, internalErrorMessage, http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
