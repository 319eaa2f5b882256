package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// API_TOKEN_TYPE is stamped into every token minted by the server or
// the CLI; tokens without it are rejected on decode.
const API_TOKEN_TYPE = "api"

const DEFAULT_TOKEN_LIFETIME = 7 * 24 * time.Hour

type GroundworkTokenClaims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.StandardClaims
}

// NewAPITokenClaims builds the claims for a bearer token with the
// given subject & role, expiring 'lifetime' from now.
func NewAPITokenClaims(subject, role string, lifetime time.Duration) GroundworkTokenClaims {
	now := time.Now()

	return GroundworkTokenClaims{
		Role: role,
		Type: API_TOKEN_TYPE,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(lifetime).Unix(),
		},
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func EncodeJWT(claims GroundworkTokenClaims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod("HS256"), claims)

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString string, secret []byte) (*GroundworkTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GroundworkTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*GroundworkTokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to GroundworkTokenClaims")
	}

	if tokenClaims.Type != API_TOKEN_TYPE {
		return nil, fmt.Errorf("invalid jwt: not an api token")
	}

	return tokenClaims, nil
}
