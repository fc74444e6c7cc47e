package chirps

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/profanity"
	"github.com/robalobadob/chirpy/internal/store"
)

func newService() *Service {
	return NewService(store.NewMemory(), profanity.New([]string{"kerfuffle", "sharbert", "fornax"}))
}

func TestValidate(t *testing.T) {
	svc := newService()

	got, err := svc.Validate("this is kerfuffle nonsense")
	require.NoError(t, err)
	assert.Equal(t, "this is **** nonsense", got)

	got, err = svc.Validate("kerfufflexyz stays")
	require.NoError(t, err)
	assert.Equal(t, "kerfufflexyz stays", got)

	_, err = svc.Validate(strings.Repeat("a", MaxLength))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Validate(strings.Repeat("a", MaxLength+1))
		require.ErrorIs(t, err, apperr.ErrChirpTooLong)
	}

	_, err = svc.Validate("")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestValidate_LengthCountsCharacters(t *testing.T) {
	svc := newService()
	_, err := svc.Validate(strings.Repeat("é", MaxLength))
	require.NoError(t, err)
	_, err = svc.Validate(strings.Repeat("é", MaxLength+1))
	require.ErrorIs(t, err, apperr.ErrChirpTooLong)
}

func TestValidate_LengthCheckedBeforeMasking(t *testing.T) {
	svc := newService()
	// 141 characters that would shrink below the limit once masked.
	body := strings.Repeat("kerfuffle ", 14) + "a"
	require.Equal(t, MaxLength+1, len(body))
	_, err := svc.Validate(body)
	require.ErrorIs(t, err, apperr.ErrChirpTooLong)
}

func TestCreateGetList(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	const n = 5
	for i := 0; i < n; i++ {
		c, err := svc.Create(ctx, 1+i%2, "hello sharbert")
		require.NoError(t, err)
		assert.Equal(t, i+1, c.ID)

		got, err := svc.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.Equal(t, "hello ****", got.Body)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, c := range list {
		assert.Equal(t, i+1, c.ID)
	}
}

func TestList_Empty(t *testing.T) {
	list, err := newService().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDelete_Ownership(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	const alice, bob = 1, 2

	c, err := svc.Create(ctx, alice, "mine")
	require.NoError(t, err)

	err = svc.Delete(ctx, bob, c.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, alice, c.ID))

	_, err = svc.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(ctx, alice, c.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	c1, err := svc.Create(ctx, 1, "one")
	require.NoError(t, err)
	c2, err := svc.Create(ctx, 1, "two")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, c1.ID))

	c3, err := svc.Create(ctx, 1, "three")
	require.NoError(t, err)
	assert.Greater(t, c3.ID, c2.ID)
}

func TestCreate_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, 1, "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, c := range list {
		assert.Equal(t, i+1, c.ID)
	}
}
