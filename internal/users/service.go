package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/model"
	"github.com/robalobadob/chirpy/internal/password"
	"github.com/robalobadob/chirpy/internal/store"
)

// TokenIssuer is satisfied by *token.Issuer.
type TokenIssuer interface {
	Issue(subjectID int, ttl time.Duration) (string, error)
}

type Service struct {
	store  store.Store
	tokens TokenIssuer
	verify func(plain, stored string) bool
}

func NewService(st store.Store, tokens TokenIssuer) *Service {
	return &Service{store: st, tokens: tokens, verify: password.Verify}
}

// unknownUserHash is verified against when the email is not registered, so
// both failure paths pay the same key-derivation cost.
var unknownUserHash = func() string {
	h, err := password.Hash("chirpy-unknown-user")
	if err != nil {
		panic(err)
	}
	return h
}()

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func validateCredentials(email, plain string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", apperr.ErrInvalidInput)
	}
	if plain == "" {
		return fmt.Errorf("%w: password is required", apperr.ErrInvalidInput)
	}
	return nil
}

// Register creates a user. Emails are unique case-insensitively.
func (s *Service) Register(ctx context.Context, email, plain string) (model.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, plain); err != nil {
		return model.User{}, err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return model.User{}, err
	}
	var created model.User
	err = s.store.Update(ctx, func(doc *store.Document) error {
		if _, taken := doc.UserByEmail(email); taken {
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		created = doc.AddUser(model.User{Email: email, PasswordHash: hash})
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return created, nil
}

// Login verifies the credentials, issues a token valid for ttl (issuer
// default when ttl <= 0) and records it as the user's current session.
func (s *Service) Login(ctx context.Context, email, plain string, ttl time.Duration) (model.User, string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, plain); err != nil {
		return model.User{}, "", err
	}
	// Verification is slow, so it runs outside the store lock; the update
	// below re-checks that the hash it verified against is still current.
	candidate, err := s.GetByEmail(ctx, email)
	if apperr.IsNotFound(err) {
		s.verify(plain, unknownUserHash)
		return model.User{}, "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}
	if !s.verify(plain, candidate.PasswordHash) {
		return model.User{}, "", apperr.ErrInvalidCredentials
	}
	tok, err := s.tokens.Issue(candidate.ID, ttl)
	if err != nil {
		return model.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	var user model.User
	err = s.store.Update(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByID(candidate.ID)
		if !ok || u.PasswordHash != candidate.PasswordHash {
			return apperr.ErrInvalidCredentials
		}
		u.Token = tok
		user = *u
		return nil
	})
	if err != nil {
		return model.User{}, "", err
	}
	return user, tok, nil
}

// UpdateCredentials replaces the email and password of subjectID. The
// caller must already have matched the request's session.
func (s *Service) UpdateCredentials(ctx context.Context, subjectID int, email, plain string) (model.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, plain); err != nil {
		return model.User{}, err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return model.User{}, err
	}
	var updated model.User
	err = s.store.Update(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByID(subjectID)
		if !ok {
			return fmt.Errorf("%w: user %d", apperr.ErrUnauthorized, subjectID)
		}
		if other, taken := doc.UserByEmail(email); taken && other.ID != subjectID {
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		u.Email = email
		u.PasswordHash = hash
		updated = *u
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (model.User, error) {
	var user model.User
	err := s.store.View(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByID(id)
		if !ok {
			return apperr.ErrNotFound
		}
		user = *u
		return nil
	})
	return user, err
}

func (s *Service) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := s.store.View(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByEmail(email)
		if !ok {
			return apperr.ErrNotFound
		}
		user = *u
		return nil
	})
	return user, err
}
