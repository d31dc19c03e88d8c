package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Signer signs and verifies session cookie tokens. The cookie value is an
// HS256 JWT whose ID (jti) is the server-side session id; the token carries no
// expiry claim because the durable session record owns expiry.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer with the given session secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign wraps a session id in a signed token suitable for cookie delivery.
func (s *Signer) Sign(sessionID string) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:       sessionID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and returns the embedded session id.
func (s *Signer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.ID, nil
}
