package engine

import (
	"context"
	"fmt"
)

// RecordStore persists what a player has achieved across sessions. The
// engine only asks questions and records answers; storage format is the
// store's business.
type RecordStore interface {
	// RecordDiscovery reports whether this call was the first to record
	// combo. Concurrent callers for the same combo see true exactly once.
	RecordDiscovery(ctx context.Context, combo string) (bool, error)
	BestScore(ctx context.Context, mode string) (score float64, ok bool, err error)
	RecordBestScore(ctx context.Context, mode string, score float64) error
}

type Discovery struct {
	NewCombos    []string // secret combos revealed for the first time
	NewBest      bool
	PreviousBest float64
	HadBest      bool
}

// Record saves first-time secret combo discoveries and a new best score
// for the evaluation's mode.
func Record(ctx context.Context, store RecordStore, ev Evaluation) (Discovery, error) {
	d := Discovery{NewCombos: []string{}}
	for _, sc := range ev.Result.ActiveSecretCombos {
		isNew, err := store.RecordDiscovery(ctx, sc.Name)
		if err != nil {
			return d, fmt.Errorf("failed to record combo %q: %w", sc.Name, err)
		}
		if isNew {
			d.NewCombos = append(d.NewCombos, sc.Name)
		}
	}

	best, ok, err := store.BestScore(ctx, ev.Mode)
	if err != nil {
		return d, fmt.Errorf("failed to read best score: %w", err)
	}
	d.PreviousBest, d.HadBest = best, ok
	if !ok || ev.Result.FinalScore > best {
		if err := store.RecordBestScore(ctx, ev.Mode, ev.Result.FinalScore); err != nil {
			return d, fmt.Errorf("failed to record best score: %w", err)
		}
		d.NewBest = true
	}
	return d, nil
}
