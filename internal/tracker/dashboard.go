package tracker

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

// Dashboard computes summary counts. Nothing is cached.
type Dashboard struct {
	store storage.Provider
	clock *clock
}

func (d *Dashboard) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	today := d.clock.today()

	var err error
	if stats.TotalJournalEntries, err = d.store.CountJournalEntries(ctx); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to count journal entries: %w", err)
	}
	if stats.TotalLifeTasks, err = d.store.CountLifeTasks(ctx); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to count life tasks: %w", err)
	}

	switch _, err := d.store.GetJournalEntry(ctx, today); {
	case err == nil:
		stats.HasTodayJournal = true
	case !errors.Is(err, apperrors.ErrNotFound):
		return models.DashboardStats{}, fmt.Errorf("failed to check today's journal entry: %w", err)
	}

	if stats.TodayProgressCount, err = d.store.CountProgressEntriesOn(ctx, today); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to count today's progress: %w", err)
	}
	return stats, nil
}
