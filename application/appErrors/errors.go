package apperrors

import (
	"net/http"

	"attendly.io/infrastructure/logger"
	server_response "attendly.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages)
}

// ConflictError reports attendance state conflicts such as a duplicate
// check-in. The client is expected to refresh its view, not retry.
func ConflictError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusConflict, message, nil, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil)
}

func ClientError(ctx interface{}, message string, errs []error) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, message, nil, errs)
}

// VerificationRejected surfaces a soft verification verdict tied to a
// retry affordance on the client.
func VerificationRejected(ctx interface{}, message string, payload interface{}) {
	server_response.Responder.Respond(ctx, http.StatusForbidden, message, payload, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil)
}

func TimeoutError(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusGatewayTimeout, "The request timed out before the record could be committed. Please try again.", nil, nil)
}

// UnavailableError is used for infrastructure failures on non-idempotent
// paths; re-submission is safe thanks to the unique day index.
func UnavailableError(ctx interface{}, err error) {
	logger.Error("dependency unavailable", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Our service is temporarily unavailable. Please try again shortly.", nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Something went wrong on our end. Please try again later.", nil, nil)
}

func MalformedHeader(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest,
		"malformed request headers", nil, nil)
}
