// Package storagetest is a behavioural suite shared by every storage backend.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/lifetracker/internal/dates"
	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

// Factory returns an initialized, empty provider. Cleanup is the factory's job.
type Factory func(t *testing.T) storage.Provider

var base = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// Run exercises p through every store operation.
func Run(t *testing.T, open Factory) {
	t.Run("Journal", func(t *testing.T) { testJournal(t, open(t)) })
	t.Run("LifeTasks", func(t *testing.T) { testLifeTasks(t, open(t)) })
	t.Run("Progress", func(t *testing.T) { testProgress(t, open(t)) })
	t.Run("Counts", func(t *testing.T) { testCounts(t, open(t)) })
}

func journalEntry(id, date, content string) models.JournalEntry {
	return models.JournalEntry{
		ID:        id,
		Date:      dates.MustParse(date),
		Content:   content,
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func testJournal(t *testing.T, s storage.Provider) {
	ctx := context.Background()

	require.NoError(t, s.InsertJournalEntry(ctx, journalEntry("j1", "2024-03-01", "first")))
	require.NoError(t, s.InsertJournalEntry(ctx, journalEntry("j2", "2024-03-03", "third")))
	require.NoError(t, s.InsertJournalEntry(ctx, journalEntry("j3", "2024-03-02", "second")))

	got, err := s.GetJournalEntry(ctx, dates.MustParse("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "j1", got.ID)
	assert.Equal(t, "2024-03-01", got.Date.String())
	assert.Equal(t, "first", got.Content)
	assert.True(t, base.Equal(got.CreatedAt), "created_at round trip")

	err = s.InsertJournalEntry(ctx, journalEntry("j4", "2024-03-01", "dup"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = s.GetJournalEntry(ctx, dates.MustParse("2024-01-01"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := s.ListJournalEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2024-03-03", "2024-03-02", "2024-03-01"},
		[]string{list[0].Date.String(), list[1].Date.String(), list[2].Date.String()})

	limited, err := s.ListJournalEntries(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	later := base.Add(time.Hour)
	n, err := s.UpdateJournalContent(ctx, dates.MustParse("2024-03-02"), "edited", later)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err = s.GetJournalEntry(ctx, dates.MustParse("2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.True(t, later.Equal(got.UpdatedAt), "updated_at refreshed")
	assert.True(t, base.Equal(got.CreatedAt), "created_at unchanged")

	n, err = s.UpdateJournalContent(ctx, dates.MustParse("2020-01-01"), "x", later)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.DeleteJournalEntry(ctx, dates.MustParse("2024-03-02"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteJournalEntry(ctx, dates.MustParse("2024-03-02"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	count, err := s.CountJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func testLifeTasks(t *testing.T, s storage.Provider) {
	ctx := context.Background()

	older := models.LifeTask{ID: "t1", Name: "Read", Category: "General", TargetValue: 100, CreatedAt: base}
	newer := models.LifeTask{
		ID:          "t2",
		Name:        "Run",
		Description: strPtr("5k"),
		Category:    "Fitness",
		TargetValue: 30,
		CreatedAt:   base.Add(time.Minute),
	}
	require.NoError(t, s.InsertLifeTask(ctx, older))
	require.NoError(t, s.InsertLifeTask(ctx, newer))

	got, err := s.GetLifeTask(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "Run", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "5k", *got.Description)
	assert.Equal(t, "Fitness", got.Category)
	assert.Equal(t, 30, got.TargetValue)

	got, err = s.GetLifeTask(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, got.Description)

	_, err = s.GetLifeTask(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := s.ListLifeTasks(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t2", list[0].ID)
	assert.Equal(t, "t1", list[1].ID)

	got.Name = "Read more"
	got.Description = strPtr("books")
	got.TargetValue = 0
	n, err := s.UpdateLifeTask(ctx, got)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	updated, err := s.GetLifeTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Read more", updated.Name)
	assert.Equal(t, "books", *updated.Description)
	assert.Equal(t, 0, updated.TargetValue)
	assert.True(t, base.Equal(updated.CreatedAt))

	updated.Description = nil
	_, err = s.UpdateLifeTask(ctx, updated)
	require.NoError(t, err)
	updated, err = s.GetLifeTask(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	n, err = s.UpdateLifeTask(ctx, models.LifeTask{ID: "missing", Name: "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.DeleteLifeTask(ctx, "t2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteLifeTask(ctx, "t2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	count, err := s.CountLifeTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func progress(id, taskID, date string, value int, notes *string) models.ProgressEntry {
	return models.ProgressEntry{
		ID:            id,
		TaskID:        taskID,
		Date:          dates.MustParse(date),
		ProgressValue: value,
		Notes:         notes,
		CreatedAt:     base,
	}
}

func testProgress(t *testing.T, s storage.Provider) {
	ctx := context.Background()

	require.NoError(t, s.InsertLifeTask(ctx, models.LifeTask{ID: "t1", Name: "Read", Category: "General", TargetValue: 100, CreatedAt: base}))
	require.NoError(t, s.InsertLifeTask(ctx, models.LifeTask{ID: "t2", Name: "Run", Category: "General", TargetValue: 100, CreatedAt: base}))

	first, err := s.UpsertProgressEntry(ctx, progress("p1", "t1", "2024-03-05", 40, strPtr("good")))
	require.NoError(t, err)
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, 40, first.ProgressValue)
	require.NotNil(t, first.Notes)
	assert.Equal(t, "good", *first.Notes)

	t.Run("empty notes keep the stored notes", func(t *testing.T) {
		e := progress("p-ignored", "t1", "2024-03-05", 55, strPtr(""))
		e.CreatedAt = base.Add(time.Hour)
		got, err := s.UpsertProgressEntry(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, "p1", got.ID)
		assert.Equal(t, 55, got.ProgressValue)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "good", *got.Notes)
		assert.True(t, base.Equal(got.CreatedAt), "created_at kept")

		got, err = s.UpsertProgressEntry(ctx, progress("p-ignored", "t1", "2024-03-05", 60, nil))
		require.NoError(t, err)
		assert.Equal(t, 60, got.ProgressValue)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "good", *got.Notes)
	})

	t.Run("non-empty notes replace", func(t *testing.T) {
		got, err := s.UpsertProgressEntry(ctx, progress("p-ignored", "t1", "2024-03-05", 70, strPtr("better")))
		require.NoError(t, err)
		assert.Equal(t, "better", *got.Notes)
	})

	_, err = s.GetProgressEntry(ctx, "t1", dates.MustParse("2024-03-06"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	for i, d := range []string{"2024-03-01", "2024-03-03", "2024-03-07", "2024-03-09"} {
		_, err := s.UpsertProgressEntry(ctx, progress("q"+d, "t1", d, i*10, nil))
		require.NoError(t, err)
	}
	_, err = s.UpsertProgressEntry(ctx, progress("other", "t2", "2024-03-05", 5, nil))
	require.NoError(t, err)

	all, err := s.ListProgressEntries(ctx, storage.ProgressQuery{TaskID: "t1"})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "2024-03-09", all[0].Date.String())
	assert.Equal(t, "2024-03-01", all[4].Date.String())

	window, err := s.ListProgressEntries(ctx, storage.ProgressQuery{
		TaskID:    "t1",
		From:      dates.MustParse("2024-03-03"),
		To:        dates.MustParse("2024-03-07"),
		Ascending: true,
		Limit:     7,
	})
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, "2024-03-03", window[0].Date.String())
	assert.Equal(t, "2024-03-05", window[1].Date.String())
	assert.Equal(t, "2024-03-07", window[2].Date.String())

	limited, err := s.ListProgressEntries(ctx, storage.ProgressQuery{TaskID: "t1", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := s.ListProgressEntries(ctx, storage.ProgressQuery{TaskID: "missing"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	n, err := s.DeleteProgressEntriesForTask(ctx, "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	rest, err := s.ListProgressEntries(ctx, storage.ProgressQuery{TaskID: "t2"})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func testCounts(t *testing.T, s storage.Provider) {
	ctx := context.Background()

	for _, fn := range []func() (int, error){
		func() (int, error) { return s.CountJournalEntries(ctx) },
		func() (int, error) { return s.CountLifeTasks(ctx) },
		func() (int, error) { return s.CountProgressEntriesOn(ctx, dates.MustParse("2024-03-05")) },
	} {
		n, err := fn()
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	require.NoError(t, s.InsertLifeTask(ctx, models.LifeTask{ID: "t1", Name: "Read", Category: "General", TargetValue: 100, CreatedAt: base}))
	require.NoError(t, s.InsertLifeTask(ctx, models.LifeTask{ID: "t2", Name: "Run", Category: "General", TargetValue: 100, CreatedAt: base}))
	_, err := s.UpsertProgressEntry(ctx, progress("a", "t1", "2024-03-05", 1, nil))
	require.NoError(t, err)
	_, err = s.UpsertProgressEntry(ctx, progress("b", "t2", "2024-03-05", 1, nil))
	require.NoError(t, err)
	_, err = s.UpsertProgressEntry(ctx, progress("c", "t2", "2024-03-04", 1, nil))
	require.NoError(t, err)

	n, err := s.CountProgressEntriesOn(ctx, dates.MustParse("2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
