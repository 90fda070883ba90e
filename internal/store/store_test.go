package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Discoveries(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	isNew, err := s.RecordDiscovery(ctx, "Moneyball")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = s.RecordDiscovery(ctx, "Moneyball")
	require.NoError(t, err, "recording twice is harmless")
	assert.False(t, isNew)

	names, err := s.Discovered(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Moneyball"}, names)
}

func TestStore_RecordDiscovery_OneWinnerUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := s.RecordDiscovery(ctx, "Iron Roster")
			assert.NoError(t, err)
			if isNew {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestStore_BestScore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, ok, err := s.BestScore(ctx, "standard")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.RecordBestScore(ctx, "standard", 5.5))
	require.NoError(t, s.RecordBestScore(ctx, "standard", 7.5))

	best, ok, err := s.BestScore(ctx, "standard")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7.5, best)

	_, ok, err = s.BestScore(ctx, "shoestring")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ServesEngineRecord(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ev, err := engine.Evaluate(catalog.Reference(), "standard", engine.NewIDSet(1, 6, 9))
	require.NoError(t, err)

	d, err := engine.Record(ctx, s, ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Complete Package"}, d.NewCombos)
	assert.True(t, d.NewBest)

	d, err = engine.Record(ctx, s, ev)
	require.NoError(t, err)
	assert.Empty(t, d.NewCombos)
	assert.False(t, d.NewBest)
}

func TestStore_SessionJournal(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, ok, err := s.LoadLog(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.StartLog(ctx, "ABC123", engine.NewEmptyState("shoestring", true)))
	require.NoError(t, s.AppendEvents(ctx, "ABC123", []engine.Event{
		{Type: engine.EvtItemAdded, ItemID: 3},
		{Type: engine.EvtRivalClaimed, ItemID: 5},
	}))
	require.NoError(t, s.AppendEvents(ctx, "ABC123", nil))
	require.NoError(t, s.AppendEvents(ctx, "ABC123", []engine.Event{{Type: engine.EvtItemAdded, ItemID: 9}}))

	// a second start does not reset the settings
	require.NoError(t, s.StartLog(ctx, "ABC123", engine.NewEmptyState("standard", false)))

	log, ok, err := s.LoadLog(ctx, "ABC123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "shoestring", log.Mode)
	assert.True(t, log.RivalEnabled)
	assert.Equal(t, []engine.Event{
		{Type: engine.EvtItemAdded, ItemID: 3},
		{Type: engine.EvtRivalClaimed, ItemID: 5},
		{Type: engine.EvtItemAdded, ItemID: 9},
	}, log.Events)

	restored := engine.Restore(catalog.Reference(), log)
	assert.Equal(t, []int{3, 9}, restored.Selected.Sorted())
	assert.Equal(t, []int{5}, restored.Rival.Sorted())
	assert.InDelta(t, 2.1, restored.Cost, 1e-9)
}
