package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure: malformed encoding, signature
// mismatch, expiry. Callers never see the underlying parse error.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and validates stateless HS256 session tokens. The secret is
// process-wide configuration loaded once at startup; validation is pure
// computation with no store access.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens builds a token service with the given signing secret and lifetime.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token binding the subject to an expiry of now + ttl.
func (t *Tokens) Issue(subject string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Subject verifies the token and returns its subject claim. Claims are only
// ever read from a token whose signature and expiry have already been checked;
// any failure collapses to ErrInvalidToken.
func (t *Tokens) Subject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, t.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Validate reports whether the token verifies, is unexpired, and is bound to
// the expected subject.
func (t *Tokens) Validate(token, expectedSubject string) bool {
	subject, err := t.Subject(token)
	return err == nil && subject == expectedSubject
}

func (t *Tokens) key(*jwt.Token) (any, error) {
	return t.secret, nil
}
