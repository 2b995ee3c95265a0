package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/lifetracker/internal/constants"
	"github.com/julianstephens/lifetracker/internal/dates"
	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

// Journal manages one entry per calendar date.
type Journal struct {
	store storage.JournalStore
	clock *clock
}

// Create adds the entry for date. It fails with ErrConflict when the date
// already has one; the existing entry is left untouched.
func (j *Journal) Create(ctx context.Context, date dates.Date, content string) (models.JournalEntry, error) {
	_, err := j.store.GetJournalEntry(ctx, date)
	switch {
	case err == nil:
		return models.JournalEntry{}, apperrors.Conflict(constants.MessageJournalExists)
	case !errors.Is(err, apperrors.ErrNotFound):
		return models.JournalEntry{}, fmt.Errorf("failed to check journal entry: %w", err)
	}

	now := j.clock.stamp()
	entry := models.JournalEntry{
		ID:        j.clock.newID(),
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := j.store.InsertJournalEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return models.JournalEntry{}, apperrors.Conflict(constants.MessageJournalExists)
		}
		return models.JournalEntry{}, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest date first.
func (j *Journal) List(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := j.store.ListJournalEntries(ctx, constants.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// GetByDate returns the entry for date. A missing entry is reported through
// found, not as an error.
func (j *Journal) GetByDate(ctx context.Context, date dates.Date) (models.JournalEntry, bool, error) {
	entry, err := j.store.GetJournalEntry(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.JournalEntry{}, false, nil
		}
		return models.JournalEntry{}, false, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return entry, true, nil
}

// Update replaces the content of the entry for date and refreshes updated_at.
func (j *Journal) Update(ctx context.Context, date dates.Date, content string) (models.JournalEntry, error) {
	n, err := j.store.UpdateJournalContent(ctx, date, content, j.clock.stamp())
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to update journal entry: %w", err)
	}
	if n == 0 {
		return models.JournalEntry{}, apperrors.NotFound(constants.MessageJournalNotFound)
	}

	entry, err := j.store.GetJournalEntry(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.JournalEntry{}, apperrors.NotFound(constants.MessageJournalNotFound)
		}
		return models.JournalEntry{}, fmt.Errorf("failed to reload journal entry: %w", err)
	}
	return entry, nil
}

// Delete removes the entry for date.
func (j *Journal) Delete(ctx context.Context, date dates.Date) error {
	n, err := j.store.DeleteJournalEntry(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound(constants.MessageJournalNotFound)
	}
	return nil
}
