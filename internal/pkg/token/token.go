package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrExpired marks a token whose exp claim has passed.
var ErrExpired = errors.New("token: expired")

// Claims are the token claims the client cares about: who the token is
// for and how long it is good.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts claims without verifying the signature. The client is
// not the token's verifier; it only needs the embedded identity and the
// expiry to decide whether a persisted token is worth reusing.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// CheckExpiry decodes the token and reports ErrExpired when its exp claim
// has passed. Tokens without an exp claim are accepted.
func CheckExpiry(tokenString string) error {
	claims, err := Decode(tokenString)
	if err != nil {
		return err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return ErrExpired
	}
	return nil
}

// Validate verifies the token signature with the given secret and returns
// the claims. Used when the client is configured with the shared secret.
func Validate(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
