package engine

import (
	"context"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

// EventLog is a session's persisted history: the settings it started
// with and every event it accepted since, in order.
type EventLog struct {
	Mode         string
	RivalEnabled bool
	Events       []Event
}

// Journal persists session event logs so a draft survives a restart.
type Journal interface {
	StartLog(ctx context.Context, code string, initial State) error
	AppendEvents(ctx context.Context, code string, events []Event) error
	LoadLog(ctx context.Context, code string) (log EventLog, ok bool, err error)
}

// Restore rebuilds the state a log describes.
func Restore(cat *catalog.Catalog, log EventLog) State {
	return Reduce(cat, log.Mode, log.RivalEnabled, log.Events)
}
