package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the claims the identity service puts in bearer tokens.
type TokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
