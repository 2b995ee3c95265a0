// Package tracker holds the record rules for journal entries, life tasks and
// progress entries on top of a storage.Provider.
package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/storage"
)

// Tracker groups the repositories that share one store and clock.
type Tracker struct {
	Journal   *Journal
	LifeTasks *LifeTasks
	Progress  *Progress
	Dashboard *Dashboard
}

type clock struct {
	now   func() time.Time
	loc   *time.Location
	newID func() string
}

// stamp returns the current instant in UTC at the stored precision.
func (c *clock) stamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

// today returns the current calendar date in the configured timezone.
func (c *clock) today() dates.Date {
	return dates.Today(c.now(), c.loc)
}

// Option configures a Tracker.
type Option func(*clock)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *clock) { c.now = now }
}

// WithLocation sets the timezone used for "today". Nil means time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *clock) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(c *clock) { c.newID = newID }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	c := &clock{
		now:   time.Now,
		loc:   time.Local,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	return &Tracker{
		Journal:   &Journal{store: store, clock: c},
		LifeTasks: &LifeTasks{store: store, clock: c},
		Progress:  &Progress{store: store, clock: c},
		Dashboard: &Dashboard{store: store, clock: c},
	}
}
