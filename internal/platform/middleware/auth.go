package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"propertyhub/pkg/domain"
)

// TokenDecoder extracts the claims carried by a bearer token. The signature is
// the identity provider's concern; decoding here only gates routing decisions.
type TokenDecoder interface {
	DecodeClaims(token string) (*TokenClaims, error)
}

// TokenClaims represents the claims the middleware expects from a decoder.
type TokenClaims struct {
	UserID domain.UserID
	Role   domain.RoleID
}

// Context keys for storing authenticated user information.
type contextKeyUserID struct{}
type contextKeyRole struct{}

var (
	ContextKeyUserID = contextKeyUserID{}
	ContextKeyRole   = contextKeyRole{}
)

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(ctx context.Context) domain.UserID {
	userID, ok := ctx.Value(ContextKeyUserID).(domain.UserID)
	if !ok {
		return 0
	}
	return userID
}

// GetRole retrieves the authenticated role from the context.
func GetRole(ctx context.Context) domain.RoleID {
	role, ok := ctx.Value(ContextKeyRole).(domain.RoleID)
	if !ok {
		return domain.RoleUnknown
	}
	return role
}

// RequireAuth validates the bearer token and stores its claims in the request context.
// Expired or undecodable tokens are rejected with 401; the caller never sees why.
func RequireAuth(decoder TokenDecoder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				writeUnauthorized(w, r, logger, "missing token", "Missing or invalid Authorization header")
				return
			}

			claims, err := decoder.DecodeClaims(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, r, logger, "invalid token", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree to callers holding one of the given roles.
// Must be mounted after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...domain.RoleID) func(http.Handler) http.Handler {
	allowed := make(map[domain.RoleID]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			if _, ok := allowed[role]; !ok {
				logger.WarnContext(r.Context(), "forbidden - insufficient role",
					"role", role.String(),
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Insufficient role"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason, description string) {
	ctx := r.Context()
	logger.WarnContext(ctx, "unauthorized access - "+reason,
		"request_id", GetRequestID(ctx),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`)); err != nil {
		logger.ErrorContext(ctx, "failed to write unauthorized response",
			"error", err,
			"request_id", GetRequestID(ctx),
		)
	}
}
