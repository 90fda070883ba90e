package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type DiscoveredCombo struct {
	Name         string `gorm:"primaryKey"`
	DiscoveredAt time.Time
}

type BestScore struct {
	Mode      string `gorm:"primaryKey"`
	Score     float64
	UpdatedAt time.Time
}

// SessionLog is the header of a session's journal: what Reduce needs
// besides the events.
type SessionLog struct {
	Code         string `gorm:"primaryKey"`
	Mode         string
	RivalEnabled bool
	CreatedAt    time.Time
}

type SessionEvent struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"index"`
	Type      string
	ItemID    int
	Mode      string
	CreatedAt time.Time
}

// Store keeps discovered secret combos, best scores per mode and session
// journals. It satisfies engine.RecordStore and engine.Journal.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres for postgres:// DSNs and to sqlite for
// anything else, then migrates the schema.
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// one connection: sqlite has a single writer, and ":memory:" is per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&DiscoveredCombo{}, &BestScore{}, &SessionLog{}, &SessionEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordDiscovery inserts combo unless it is already there. The insert
// itself decides who was first, so two sessions racing on one combo
// cannot both report it as new.
func (s *Store) RecordDiscovery(ctx context.Context, combo string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&DiscoveredCombo{Name: combo, DiscoveredAt: time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Discovered lists combo names in discovery order.
func (s *Store) Discovered(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&DiscoveredCombo{}).
		Order("discovered_at, name").
		Pluck("name", &names).Error
	return names, err
}

func (s *Store) BestScore(ctx context.Context, mode string) (float64, bool, error) {
	var row BestScore
	err := s.db.WithContext(ctx).Where("mode = ?", mode).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.Score, true, nil
}

func (s *Store) RecordBestScore(ctx context.Context, mode string, score float64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mode"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(&BestScore{Mode: mode, Score: score, UpdatedAt: time.Now().UTC()}).Error
}

// StartLog opens a journal for code. Starting one that exists is a no-op,
// so a restored session keeps its original settings.
func (s *Store) StartLog(ctx context.Context, code string, initial engine.State) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SessionLog{Code: code, Mode: initial.Mode, RivalEnabled: initial.RivalEnabled, CreatedAt: time.Now().UTC()}).Error
}

func (s *Store) AppendEvents(ctx context.Context, code string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]SessionEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, SessionEvent{Code: code, Type: string(e.Type), ItemID: e.ItemID, Mode: e.Mode, CreatedAt: now})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *Store) LoadLog(ctx context.Context, code string) (engine.EventLog, bool, error) {
	var head SessionLog
	err := s.db.WithContext(ctx).Where("code = ?", code).Take(&head).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.EventLog{}, false, nil
	}
	if err != nil {
		return engine.EventLog{}, false, err
	}

	var rows []SessionEvent
	if err := s.db.WithContext(ctx).Where("code = ?", code).Order("id").Find(&rows).Error; err != nil {
		return engine.EventLog{}, false, err
	}
	log := engine.EventLog{Mode: head.Mode, RivalEnabled: head.RivalEnabled, Events: make([]engine.Event, 0, len(rows))}
	for _, r := range rows {
		log.Events = append(log.Events, engine.Event{Type: engine.EventType(r.Type), ItemID: r.ItemID, Mode: r.Mode})
	}
	return log, true, nil
}
