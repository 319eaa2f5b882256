package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func TestEncodeDecodeJWT(t *testing.T) {
	claims := NewAPITokenClaims("61f0c4", "admin", DEFAULT_TOKEN_LIFETIME)

	tokenString, err := EncodeJWT(claims, testSecret)
	assert.Nil(t, err)
	assert.NotEmpty(t, tokenString)

	decoded, err := DecodeJWT(tokenString, testSecret)
	assert.Nil(t, err)
	assert.Equal(t, "61f0c4", decoded.Subject)
	assert.Equal(t, "admin", decoded.Role)
	assert.Equal(t, API_TOKEN_TYPE, decoded.Type)
	assert.Equal(t, claims.ExpiresAt, decoded.ExpiresAt)
}

func TestDecodeJWTWithWrongSecret(t *testing.T) {
	claims := NewAPITokenClaims("61f0c4", "admin", time.Hour)
	tokenString, err := EncodeJWT(claims, testSecret)
	assert.Nil(t, err)

	_, err = DecodeJWT(tokenString, []byte("some-other-secret"))
	assert.NotNil(t, err, "a token signed with another secret should be rejected")
}

func TestDecodeExpiredJWT(t *testing.T) {
	claims := NewAPITokenClaims("61f0c4", "admin", -time.Hour)
	tokenString, err := EncodeJWT(claims, testSecret)
	assert.Nil(t, err)

	_, err = DecodeJWT(tokenString, testSecret)
	assert.NotNil(t, err, "an expired token should be rejected")
}

func TestDecodeJWTWithWrongTokenType(t *testing.T) {
	claims := NewAPITokenClaims("61f0c4", "admin", time.Hour)
	claims.Type = "session"

	tokenString, err := EncodeJWT(claims, testSecret)
	assert.Nil(t, err)

	_, err = DecodeJWT(tokenString, testSecret)
	assert.NotNil(t, err, "only api tokens are accepted")
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("some-password")
	assert.Nil(t, err)

	assert.True(t, CheckPasswordHash("some-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}
