// internal/token/token.go
//
// HS256 bearer tokens carrying a numeric user id in the "sub" claim.
//
// Notes:
//   - Every Issuer owns its default lifetime.
//   - Validation uses zero leeway: a token is rejected the second it expires.
//   - Only HS256 is accepted; "none" and asymmetric algorithms are refused.

package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token signing secret is not configured")
)

// DefaultTTL is used when an Issuer is built with a non-positive default.
const DefaultTTL = 24 * time.Hour

// Issuer signs and validates tokens with one server-held secret.
type Issuer struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewIssuer returns an Issuer. An empty secret is accepted here so the
// server can start without one; Issue then fails with ErrMissingSecret and
// Validate rejects everything.
func NewIssuer(secret []byte, defaultTTL time.Duration) *Issuer {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Issuer{secret: secret, defaultTTL: defaultTTL, now: time.Now}
}

// DefaultTTL reports the lifetime used when Issue is called with ttl <= 0.
func (i *Issuer) DefaultTTL() time.Duration { return i.defaultTTL }

// Issue signs a token for subjectID valid for ttl (or the issuer default).
func (i *Issuer) Issue(subjectID int, ttl time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(subjectID),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, expiry and not-before, then returns the
// subject id. Every failure wraps ErrInvalidToken.
func (i *Issuer) Validate(tokenString string) (int, error) {
	if len(i.secret) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, ErrMissingSecret)
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}
	return id, nil
}
