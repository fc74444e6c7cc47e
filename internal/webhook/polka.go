// internal/webhook/polka.go
//
// Billing-provider callbacks. Only "user.upgraded" changes state; every
// other event is acknowledged and ignored so the provider stops retrying.

package webhook

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/store"
)

// EventUserUpgraded is the only event acted upon.
const EventUserUpgraded = "user.upgraded"

type Polka struct {
	apiKey string
	store  store.Store
}

func NewPolka(apiKey string, st store.Store) *Polka {
	return &Polka{apiKey: apiKey, store: st}
}

// Authorize compares key with the configured key in constant time. An
// unconfigured key rejects everything.
func (p *Polka) Authorize(key string) error {
	if p.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(p.apiKey)) != 1 {
		return fmt.Errorf("%w: bad api key", apperr.ErrUnauthorized)
	}
	return nil
}

// HandleUserUpgraded authorizes the call, then marks userID as a Chirpy Red
// subscriber when event is EventUserUpgraded. Upgrading twice is a no-op.
func (p *Polka) HandleUserUpgraded(ctx context.Context, apiKey, event string, userID int) error {
	if err := p.Authorize(apiKey); err != nil {
		return err
	}
	if event != EventUserUpgraded {
		log.Debug().Str("event", event).Msg("ignoring polka event")
		return nil
	}
	err := p.store.Update(ctx, func(doc *store.Document) error {
		u, ok := doc.UserByID(userID)
		if !ok {
			return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		u.IsChirpyRed = true
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int("user_id", userID).Msg("user upgraded to chirpy red")
	return nil
}
