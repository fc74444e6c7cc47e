// internal/auth/guard.go
//
// Request authentication.
//
// Authenticate only checks the bearer token. AuthenticateAndMatch also
// requires the token to be the user's most recently issued one, so logging
// in again revokes every earlier token before its expiry.

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/model"
	"github.com/robalobadob/chirpy/internal/store"
)

const (
	bearerScheme = "bearer"
	apiKeyScheme = "apikey"
)

// TokenValidator is satisfied by *token.Issuer.
type TokenValidator interface {
	Validate(token string) (int, error)
}

// Guard resolves the caller of a request.
type Guard struct {
	tokens TokenValidator
	store  store.Store
}

func NewGuard(tokens TokenValidator, st store.Store) *Guard {
	return &Guard{tokens: tokens, store: st}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(h http.Header) (string, error) {
	return schemeValue(h, bearerScheme)
}

// APIKey extracts the key from "Authorization: ApiKey <key>".
func APIKey(h http.Header) (string, error) {
	return schemeValue(h, apiKeyScheme)
}

func schemeValue(h http.Header, scheme string) (string, error) {
	header := strings.TrimSpace(h.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", apperr.ErrUnauthorized)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return "", fmt.Errorf("%w: malformed authorization header", apperr.ErrUnauthorized)
	}
	value := strings.TrimSpace(parts[1])
	if value == "" {
		return "", fmt.Errorf("%w: empty %s credential", apperr.ErrUnauthorized, scheme)
	}
	return value, nil
}

// Authenticate returns the user id carried by the request's bearer token.
func (g *Guard) Authenticate(r *http.Request) (int, error) {
	id, _, err := g.authenticate(r)
	return id, err
}

func (g *Guard) authenticate(r *http.Request) (int, string, error) {
	tok, err := BearerToken(r.Header)
	if err != nil {
		return 0, "", err
	}
	id, err := g.tokens.Validate(tok)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}
	return id, tok, nil
}

// AuthenticateAndMatch authenticates the request and loads its user,
// requiring the presented token to equal the user's current token.
// Store failures are returned as-is so they are not mistaken for a 401.
func (g *Guard) AuthenticateAndMatch(ctx context.Context, r *http.Request) (int, model.User, error) {
	id, tok, err := g.authenticate(r)
	if err != nil {
		return 0, model.User{}, err
	}
	var user model.User
	err = g.store.View(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByID(id)
		if !ok {
			return fmt.Errorf("%w: user %d no longer exists", apperr.ErrUnauthorized, id)
		}
		if u.Token == "" || u.Token != tok {
			return fmt.Errorf("%w: token is not the current session", apperr.ErrUnauthorized)
		}
		user = *u
		return nil
	})
	if err != nil {
		return 0, model.User{}, err
	}
	return id, user, nil
}
