package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecode_ExtractsClaimsWithoutVerification(t *testing.T) {
	// Arrange
	signed := signToken(t, "some-secret", Claims{
		UserID: "acc-1",
		Role:   "PASSENGER",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	// Act
	claims, err := Decode(signed)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UserID)
	assert.Equal(t, "PASSENGER", claims.Role)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode("not.a.token")
	assert.Error(t, err)
}

func TestCheckExpiry(t *testing.T) {
	valid := signToken(t, "s", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	expired := signToken(t, "s", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	noExp := signToken(t, "s", Claims{UserID: "acc-1"})

	assert.NoError(t, CheckExpiry(valid))
	assert.ErrorIs(t, CheckExpiry(expired), ErrExpired)
	assert.NoError(t, CheckExpiry(noExp))
}

func TestValidate_ChecksSignature(t *testing.T) {
	// Arrange
	signed := signToken(t, "right-secret", Claims{
		UserID: "acc-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	// Act & Assert
	claims, err := Validate(signed, "right-secret")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UserID)

	_, err = Validate(signed, "wrong-secret")
	assert.Error(t, err)
}
