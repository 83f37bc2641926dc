package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errors surfaced by token verification
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token verification failed")
)

// TokenAuthority issues and verifies the signed bearer tokens tied to an
// email identity. The same process-wide secret signs the tokens and acts
// as the administrative credential for issuing and revoking them.
type TokenAuthority struct {
	secret []byte
}

// NewTokenAuthority initializes a token authority around the shared secret
func NewTokenAuthority(secret string) *TokenAuthority {
	return &TokenAuthority{secret: []byte(secret)}
}

// Issue signs a token embedding the email and a fresh nonce, so two tokens
// issued for the same email are never byte-identical
func (a *TokenAuthority) Issue(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"nonce": uuid.New().String(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify checks the signature and payload of a presented token and returns
// the email it was signed with. Verification is stateless: it never
// consults the token store, so a revoked token stays cryptographically
// valid until the secret rotates.
func (a *TokenAuthority) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenMissing
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrTokenInvalid
	}
	return email, nil
}

// CheckAdminSecret compares a presented shared secret against the
// administrative secret in constant time
func (a *TokenAuthority) CheckAdminSecret(presented string) bool {
	presentedHash := sha256.Sum256([]byte(presented))
	expectedHash := sha256.Sum256(a.secret)
	return subtle.ConstantTimeCompare(presentedHash[:], expectedHash[:]) == 1
}
