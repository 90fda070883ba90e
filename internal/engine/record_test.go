package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	combos map[string]bool
	best   map[string]float64
	err    error
}

func newMemStore() *memStore {
	return &memStore{combos: map[string]bool{}, best: map[string]float64{}}
}

func (m *memStore) RecordDiscovery(_ context.Context, combo string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.combos[combo] {
		return false, nil
	}
	m.combos[combo] = true
	return true, nil
}

func (m *memStore) BestScore(_ context.Context, mode string) (float64, bool, error) {
	s, ok := m.best[mode]
	return s, ok, nil
}

func (m *memStore) RecordBestScore(_ context.Context, mode string, score float64) error {
	m.best[mode] = score
	return nil
}

func TestRecord(t *testing.T) {
	cat := catalog.Reference()
	ctx := context.Background()
	store := newMemStore()

	ev, err := Evaluate(cat, "standard", NewIDSet(1, 6, 9))
	require.NoError(t, err)

	d, err := Record(ctx, store, ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Complete Package"}, d.NewCombos)
	assert.True(t, d.NewBest)
	assert.False(t, d.HadBest)

	// same build again: nothing new
	d, err = Record(ctx, store, ev)
	require.NoError(t, err)
	assert.Empty(t, d.NewCombos)
	assert.False(t, d.NewBest)
	assert.Equal(t, 7.5, d.PreviousBest)

	worse, err := Evaluate(cat, "standard", NewIDSet(3, 5, 7))
	require.NoError(t, err)
	d, err = Record(ctx, store, worse)
	require.NoError(t, err)
	assert.False(t, d.NewBest)
	assert.Equal(t, 7.5, store.best["standard"])
}

func TestRecord_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk on fire")

	ev, err := Evaluate(catalog.Reference(), "standard", NewIDSet(1, 6, 9))
	require.NoError(t, err)

	_, err = Record(context.Background(), store, ev)
	require.ErrorIs(t, err, store.err)
}
