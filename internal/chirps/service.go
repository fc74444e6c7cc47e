package chirps

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/model"
	"github.com/robalobadob/chirpy/internal/store"
)

// MaxLength is counted in characters, before masking.
const MaxLength = 140

// Cleaner masks unwanted words; *profanity.Filter satisfies it.
type Cleaner interface {
	Clean(s string) string
}

type Service struct {
	store   store.Store
	cleaner Cleaner
}

func NewService(st store.Store, cleaner Cleaner) *Service {
	return &Service{store: st, cleaner: cleaner}
}

// Validate checks the length of body and returns it with profanity masked.
func (s *Service) Validate(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("%w: body is required", apperr.ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > MaxLength {
		return "", apperr.ErrChirpTooLong
	}
	return s.cleaner.Clean(body), nil
}

func (s *Service) Create(ctx context.Context, authorID int, body string) (model.Chirp, error) {
	cleaned, err := s.Validate(body)
	if err != nil {
		return model.Chirp{}, err
	}
	var created model.Chirp
	err = s.store.Update(ctx, func(doc *store.Document) error {
		created = doc.AddChirp(model.Chirp{Body: cleaned, AuthorID: authorID})
		return nil
	})
	if err != nil {
		return model.Chirp{}, err
	}
	return created, nil
}

// List returns every chirp ordered by ascending id.
func (s *Service) List(ctx context.Context) ([]model.Chirp, error) {
	var out []model.Chirp
	err := s.store.View(ctx, func(doc *store.Document) error {
		out = make([]model.Chirp, len(doc.Chirps))
		copy(out, doc.Chirps)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (model.Chirp, error) {
	var chirp model.Chirp
	err := s.store.View(ctx, func(doc *store.Document) error {
		c, ok := doc.ChirpByID(id)
		if !ok {
			return fmt.Errorf("%w: chirp %d", apperr.ErrNotFound, id)
		}
		chirp = *c
		return nil
	})
	return chirp, err
}

// Delete removes chirp id if subjectID wrote it.
func (s *Service) Delete(ctx context.Context, subjectID, id int) error {
	return s.store.Update(ctx, func(doc *store.Document) error {
		c, ok := doc.ChirpByID(id)
		if !ok {
			return fmt.Errorf("%w: chirp %d", apperr.ErrNotFound, id)
		}
		if c.AuthorID != subjectID {
			return fmt.Errorf("%w: chirp %d belongs to user %d", apperr.ErrForbidden, id, c.AuthorID)
		}
		doc.RemoveChirp(id)
		return nil
	})
}
