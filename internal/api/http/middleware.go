package http

import (
	"context"
	"net/http"
	"strings"

	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/security"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

// AuthMiddleware validates the bearer token and stores the claims on the
// request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respondError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, http.StatusUnauthorized, security.ErrWrongTokenType.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated user's claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*security.UserClaims)
	return claims, ok
}

// LoggingMiddleware logs each request with method, path and status.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("Request handled", "method", r.Method, "path", r.URL.Path, "status", recorder.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
