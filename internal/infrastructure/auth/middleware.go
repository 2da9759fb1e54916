package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID is used by tests and internal callers that bypass the middleware.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func AuthMiddleware(redisClient redis.RedisClient, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization header missing")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := ValidateToken(jwtSecret, parts[1])
			if err != nil {
				slog.Warn("invalid token", "error", err)
				unauthorized(w, "invalid token")
				return
			}

			revoked, err := IsRevoked(r.Context(), redisClient, claims)
			if err != nil {
				slog.Error("failed to check token revocation", "user_id", claims.UserID, "error", err)
				http.Error(w, `{"error":"authorization unavailable"}`, http.StatusServiceUnavailable)
				return
			}
			if revoked {
				slog.Warn("revoked token used", "user_id", claims.UserID, "jti", claims.ID)
				unauthorized(w, ErrTokenRevoked.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
