package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/lifetracker/internal/backup"
	"github.com/julianstephens/lifetracker/internal/cli"
	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/storage/jsonfile"
	"github.com/julianstephens/lifetracker/internal/storage/sqlite"
)

func setupTestBackupDB(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(path)
	require.NoError(t, store.Init(context.Background()))

	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Location: time.UTC, Out: &out}
	_, err := ctx.Tracker().Journal.Create(context.Background(), dates.MustParse("2024-03-01"), "first")
	require.NoError(t, err)
	return ctx, path, &out
}

func countJournal(t *testing.T, path string) int {
	t.Helper()
	store := sqlite.NewStore(path)
	require.NoError(t, store.Load(context.Background()))
	defer store.Close()
	n, err := store.CountJournalEntries(context.Background())
	require.NoError(t, err)
	return n
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, path, out := setupTestBackupDB(t)

	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Backup created")

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "1 total")

	backups, err := backup.NewManager(path).List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, out.String(), filepath.Base(backups[0].Path))
}

func TestBackupListEmpty(t *testing.T) {
	ctx, _, out := setupTestBackupDB(t)
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")
}

func TestBackupRestore(t *testing.T) {
	ctx, path, _ := setupTestBackupDB(t)
	mgr := backup.NewManager(path)

	backupPath, err := mgr.Create(context.Background())
	require.NoError(t, err)

	_, err = ctx.Tracker().Journal.Create(context.Background(), dates.MustParse("2024-03-02"), "second")
	require.NoError(t, err)
	require.NoError(t, ctx.Store.Close())
	require.Equal(t, 2, countJournal(t, path))

	ctx.Store = sqlite.NewStore(path)
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	require.NoError(t, cmd.Run(ctx))

	assert.Equal(t, 1, countJournal(t, path))
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, path, out := setupTestBackupDB(t)

	backupPath, err := backup.NewManager(path).Create(context.Background())
	require.NoError(t, err)

	ctx.In = strings.NewReader("n\n")
	require.NoError(t, (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setupTestBackupDB(t)
	err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup file not found")
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{
		Store: jsonfile.NewStore(filepath.Join(t.TempDir(), "tracker.json")),
		Out:   &bytes.Buffer{},
	}
	err := (&BackupCreateCmd{}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only supports SQLite")
}
