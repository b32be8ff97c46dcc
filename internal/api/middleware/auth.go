package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the authenticated identity attached by
// AuthMiddleware, if any
func IdentityFromContext(ctx context.Context) (*entities.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*entities.Identity)
	return identity, ok
}

// ContextWithIdentity attaches an identity to the context; used by tests
func ContextWithIdentity(ctx context.Context, identity *entities.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// AuthMiddleware validates the bearer token and resolves the caller's
// identity from the directory. Tokens are validated here, never minted;
// credential issuance is out of scope for this service.
func AuthMiddleware(secret string, identityRepo repositories.IdentityRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, apperrors.NewUnauthorizedError("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				writeAuthError(w, http.StatusUnauthorized, "token has no subject")
				return
			}

			identity, err := identityRepo.GetByID(r.Context(), subject)
			if err != nil {
				if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "unknown identity")
					return
				}
				log.Error().Str("user_id", subject).Err(err).Msg("failed to resolve identity")
				writeAuthError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if identity.Blocked {
				writeAuthError(w, http.StatusForbidden, "account is blocked")
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without platform-wide privileges. Must run
// after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}
		if !identity.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Browsers cannot set headers on websocket connections, so the token
	// may arrive as a query parameter on the upgrade request
	return r.URL.Query().Get("token")
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
