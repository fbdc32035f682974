package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/forum-api/services"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Internal failures are logged and answered with a generic message.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var domainErr *services.DomainError
	message := err.Error()
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	var writeErr error
	switch {
	case services.IsValidationError(err):
		var validationErr *utils.ValidationError
		if errors.As(err, &validationErr) {
			writeErr = utils.WriteValidationError(w, validationErr)
		} else {
			writeErr = utils.WriteBadRequest(w, message, nil)
		}

	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, message)

	case services.IsUnauthorizedError(err):
		writeErr = utils.WriteUnauthorized(w, message)

	case services.IsConflictError(err):
		writeErr = utils.WriteConflict(w, message, nil)

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "An internal error occurred")

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}

	if domainErr != nil {
		logger.Debug("handled service error",
			zap.String("type", string(domainErr.Type)),
			zap.String("message", domainErr.Message))
	}
}
