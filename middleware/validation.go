package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/upb/forum-api/internal/observability"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// payloadKey scopes a validated payload by its type
type payloadKey[T any] struct{}

// Payload returns the value stored by ValidateJSON or ValidateQuery for T
func Payload[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(payloadKey[T]{}).(T)
	return v, ok
}

// WithPayload stores a validated payload in the context
func WithPayload[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, payloadKey[T]{}, v)
}

// MaxBodyBytes caps the request bodies read by ValidateJSON
const MaxBodyBytes int64 = 1 << 20

// ValidateJSON decodes and validates the request body as T.
// Invalid bodies get a 400 listing every violation; the next handler is not run.
func ValidateJSON[T any](logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
			v, err := utils.DecodeJSON[T](r.Body)
			if err != nil {
				reject(w, r, logger, "body", err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), v)))
		})
	}
}

// ValidateQuery binds and validates the query string as T
func ValidateQuery[T any](logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := utils.BindQuery[T](r.URL.Query())
			if err != nil {
				reject(w, r, logger, "query", err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), v)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, logger *zap.Logger, source string, err error) {
	observability.ValidationFailuresTotal.WithLabelValues(source).Inc()

	requestID := GetRequestIDFromContext(r.Context())
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		logger.Error("request binding failed",
			zap.String("request_id", requestID),
			zap.String("source", source),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	logger.Debug("request validation failed",
		zap.String("request_id", requestID),
		zap.String("source", source),
		zap.Any("violations", validationErr.Violations))
	_ = utils.WriteValidationError(w, validationErr)
}
