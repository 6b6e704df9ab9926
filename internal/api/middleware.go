package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// AuthMiddleware resolves the Authorization header through the gate and adds
// the caller's identity to the context. A player that no longer exists is
// rejected as unauthenticated.
func AuthMiddleware(gate *auth.Gate, rs responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := gate.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					rs.failWith(w, r, http.StatusUnauthorized, KindPlayerNotFound, model.ErrMsgPlayerNotFound, err)
					return
				}
				rs.fail(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that checks if the player has at least the given role.
func RequireRole(minimum string, rs responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				rs.fail(w, r, model.ErrUnauthenticated)
				return
			}
			if !model.RoleAtLeast(identity.Claims.Role, minimum) {
				rs.fail(w, r, model.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity retrieves the resolved caller from the context.
func GetIdentity(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware tags each request with an id and logs method, path, status, and duration.
// An incoming X-Request-ID is reused.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := logger.WithRequestID(r.Context(), requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.FromContext(ctx).Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
