package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

var (
	ErrMissingSecret = errors.New("JWT secret not set")
	ErrTokenRevoked  = errors.New("token revoked")
)

// IssueToken signs an HS256 token for userID. Tokens are normally minted by
// the identity service; this mirrors its format for local tooling and tests.
func IssueToken(secret string, userID int64, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken parses tokenStr and returns its claims when the signature,
// algorithm and expiry check out.
func ValidateToken(secret, tokenStr string) (*models.TokenClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func revocationKey(claims *models.TokenClaims) string {
	return "auth:revoked:" + claims.ID
}

// RevokeToken blacklists the token until it would have expired anyway.
func RevokeToken(ctx context.Context, client redis.RedisClient, claims *models.TokenClaims, now time.Time) error {
	if claims.ID == "" {
		return errors.New("token has no jti")
	}
	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(now)
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revocationKey(claims), "1", ttl)
}

// IsRevoked reports whether the token's jti is blacklisted.
func IsRevoked(ctx context.Context, client redis.RedisClient, claims *models.TokenClaims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	_, err := client.Get(ctx, revocationKey(claims))
	if errors.Is(err, redis.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
