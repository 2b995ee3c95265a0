package tracker

import (
	"context"
	"fmt"

	"github.com/julianstephens/lifetracker/internal/constants"
	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

// Progress manages per-day progress, at most one entry per task and date.
type Progress struct {
	store storage.ProgressStore
	clock *clock
}

// Upsert records progress for (task_id, date). A repeat submission replaces
// progress_value and, when non-empty, notes; id and created_at are kept.
// task_id is not checked against existing tasks.
func (p *Progress) Upsert(ctx context.Context, in models.ProgressEntryCreate) (models.ProgressEntry, error) {
	entry, err := p.store.UpsertProgressEntry(ctx, models.ProgressEntry{
		ID:            p.clock.newID(),
		TaskID:        in.TaskID,
		Date:          in.Date,
		ProgressValue: in.ProgressValue,
		Notes:         in.Notes,
		CreatedAt:     p.clock.stamp(),
	})
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("failed to save progress entry: %w", err)
	}
	return entry, nil
}

// ListByTask returns the task's entries newest date first.
func (p *Progress) ListByTask(ctx context.Context, taskID string) ([]models.ProgressEntry, error) {
	entries, err := p.store.ListProgressEntries(ctx, storage.ProgressQuery{
		TaskID: taskID,
		Limit:  constants.ListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}
	return entries, nil
}

// WeeklyWindow returns the task's entries for the seven days ending today,
// oldest first.
func (p *Progress) WeeklyWindow(ctx context.Context, taskID string) ([]models.ProgressEntry, error) {
	from, to := dates.Window(p.clock.today(), constants.WeekWindowDays)
	entries, err := p.store.ListProgressEntries(ctx, storage.ProgressQuery{
		TaskID:    taskID,
		From:      from,
		To:        to,
		Ascending: true,
		Limit:     constants.WeekWindowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly progress: %w", err)
	}
	return entries, nil
}
