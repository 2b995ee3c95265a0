package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, content string) string {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "lifetracker.db")

	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.InsertJournalEntry(ctx, models.JournalEntry{
		ID:      "j1",
		Date:    dates.MustParse("2024-02-01"),
		Content: content,
	}))
	require.NoError(t, store.Close())
	return dbPath
}

func readJournal(t *testing.T, dbPath string) string {
	t.Helper()
	ctx := context.Background()
	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Load(ctx))
	defer store.Close()

	e, err := store.GetJournalEntry(ctx, dates.MustParse("2024-02-01"))
	require.NoError(t, err)
	return e.Content
}

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[min(i, len(ts)-1)]
		i++
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, "original")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC))

	path, err := mgr.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mgr.Dir(), "lifetracker-20240201-0830.db"), path)
	assert.Equal(t, "original", readJournal(t, path))
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	_, err := mgr.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database does not exist")
}

func TestUniqueFilenames(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)
	at := time.Date(2024, 2, 1, 8, 30, 15, 0, time.UTC)
	mgr.now = fixedClock(at)

	ctx := context.Background()
	first, err := mgr.Create(ctx)
	require.NoError(t, err)
	second, err := mgr.Create(ctx)
	require.NoError(t, err)
	third, err := mgr.Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, "lifetracker-20240201-0830.db", filepath.Base(first))
	assert.Equal(t, "lifetracker-20240201-083015.db", filepath.Base(second))
	assert.Equal(t, "lifetracker-20240201-083015-1.db", filepath.Base(third))

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)
	mgr.maxBackups = 3

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var stamps []time.Time
	for i := range 5 {
		stamps = append(stamps, start.Add(time.Duration(i)*time.Hour))
	}
	mgr.now = fixedClock(stamps...)

	for range 5 {
		_, err := mgr.Create(context.Background())
		require.NoError(t, err)
	}

	backups, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, stamps[4], backups[0].Timestamp)
	assert.Equal(t, stamps[2], backups[2].Timestamp)
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Empty(t, backups)

	require.NoError(t, os.MkdirAll(mgr.Dir(), 0700))
	for _, name := range []string{"notes.txt", "lifetracker-garbage.db", "lifetracker-20240101-1200-x.db"} {
		require.NoError(t, os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(mgr.Dir(), "lifetracker-20240101-1200-2.db"), []byte("x"), 0600))

	backups, err = mgr.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), backups[0].Timestamp)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := setupTestDB(t, "before")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(
		time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	)

	snapshot, err := mgr.Create(ctx)
	require.NoError(t, err)

	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Load(ctx))
	_, err = store.UpdateJournalContent(ctx, dates.MustParse("2024-02-01"), "after", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Equal(t, "after", readJournal(t, dbPath))

	previous, err := mgr.Restore(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "before", readJournal(t, dbPath))

	require.NotEmpty(t, previous)
	assert.Equal(t, "after", readJournal(t, previous))
	assert.NoFileExists(t, dbPath+".restore.tmp")
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t, "keep")
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("not a database"), 0600))

	_, err := mgr.Restore(context.Background(), bogus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted or invalid")

	_, err = mgr.Restore(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	assert.Equal(t, "keep", readJournal(t, dbPath))
}
