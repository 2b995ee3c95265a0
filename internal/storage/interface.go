package storage

import (
	"context"
	"time"

	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
)

// ProgressQuery selects progress entries for one task. Zero dates leave that
// side of the range open.
type ProgressQuery struct {
	TaskID    string
	From      dates.Date
	To        dates.Date
	Ascending bool
	Limit     int
}

// JournalStore persists journal entries keyed by date.
type JournalStore interface {
	// InsertJournalEntry returns errors.ErrConflict when the date is taken.
	InsertJournalEntry(ctx context.Context, entry models.JournalEntry) error
	// GetJournalEntry returns errors.ErrNotFound when no entry exists.
	GetJournalEntry(ctx context.Context, date dates.Date) (models.JournalEntry, error)
	// ListJournalEntries orders by date descending.
	ListJournalEntries(ctx context.Context, limit int) ([]models.JournalEntry, error)
	UpdateJournalContent(ctx context.Context, date dates.Date, content string, updatedAt time.Time) (int64, error)
	DeleteJournalEntry(ctx context.Context, date dates.Date) (int64, error)
	CountJournalEntries(ctx context.Context) (int, error)
}

// LifeTaskStore persists life tasks keyed by id.
type LifeTaskStore interface {
	InsertLifeTask(ctx context.Context, task models.LifeTask) error
	// GetLifeTask returns errors.ErrNotFound when no task exists.
	GetLifeTask(ctx context.Context, id string) (models.LifeTask, error)
	// ListLifeTasks orders by created_at descending.
	ListLifeTasks(ctx context.Context, limit int) ([]models.LifeTask, error)
	// UpdateLifeTask overwrites name, description, category and target_value.
	UpdateLifeTask(ctx context.Context, task models.LifeTask) (int64, error)
	DeleteLifeTask(ctx context.Context, id string) (int64, error)
	CountLifeTasks(ctx context.Context) (int, error)
}

// ProgressStore persists progress entries keyed by (task_id, date).
type ProgressStore interface {
	// UpsertProgressEntry inserts entry, or, when an entry already exists for
	// the same task and date, sets its progress_value and, only if entry.Notes
	// is non-empty, its notes. The stored record is returned; id and
	// created_at of an existing record are kept.
	UpsertProgressEntry(ctx context.Context, entry models.ProgressEntry) (models.ProgressEntry, error)
	// GetProgressEntry returns errors.ErrNotFound when no entry exists.
	GetProgressEntry(ctx context.Context, taskID string, date dates.Date) (models.ProgressEntry, error)
	ListProgressEntries(ctx context.Context, q ProgressQuery) ([]models.ProgressEntry, error)
	DeleteProgressEntriesForTask(ctx context.Context, taskID string) (int64, error)
	CountProgressEntriesOn(ctx context.Context, date dates.Date) (int, error)
}

// Provider is a storage backend.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	JournalStore
	LifeTaskStore
	ProgressStore

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned schema.
type Migrator interface {
	Migrate(ctx context.Context, logFn func(string)) (int, error)
	SchemaStatus(ctx context.Context) (current, latest int, err error)
}
