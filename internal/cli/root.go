package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/lifetracker/internal/keyring"
	"github.com/julianstephens/lifetracker/internal/logger"
	"github.com/julianstephens/lifetracker/internal/storage"
	"github.com/julianstephens/lifetracker/internal/storage/jsonfile"
	"github.com/julianstephens/lifetracker/internal/storage/postgres"
	"github.com/julianstephens/lifetracker/internal/storage/sqlite"
	"github.com/julianstephens/lifetracker/internal/tracker"
)

// KeyringSource is the --db value that reads the Postgres connection string
// from the OS keyring.
const KeyringSource = "keyring"

type Context struct {
	Store    storage.Provider
	Location *time.Location
	Out      io.Writer
	In       io.Reader
}

// Tracker wires the tracker to the context's store and timezone.
func (c *Context) Tracker() *tracker.Tracker {
	return tracker.New(c.Store, tracker.WithLocation(c.Location))
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Input returns the reader used for confirmations.
func (c *Context) Input() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// SQLitePath returns the database file of a sqlite store.
func (c *Context) SQLitePath() (string, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return "", errors.New("this command only supports SQLite storage")
	}
	return c.Store.GetConfigPath(), nil
}

// IsPostgresURL reports whether source is a Postgres connection URI.
func IsPostgresURL(source string) bool {
	return strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://")
}

// OpenStore selects a storage backend for source without connecting:
// a postgres:// URI, "keyring", a .json file or otherwise a sqlite file.
func OpenStore(source string) (storage.Provider, error) {
	switch {
	case source == KeyringSource:
		connStr, err := keyring.GetConnectionString("")
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring. Use 'lifetracker keyring set' to store one")
			}
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		// Keyring contents are trusted, embedded credentials included.
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("invalid connection string in keyring: %w", err)
		}
		return postgres.New(connStr), nil

	case IsPostgresURL(source):
		if _, err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the connection string with 'lifetracker keyring set' or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(source), nil
	}

	path, err := ExpandPath(source)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		logger.Debug("Using JSON file storage", "path", path)
		return jsonfile.NewStore(path), nil
	}
	logger.Debug("Using SQLite storage", "path", path)
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// LoadLocation resolves a timezone name. "Local" and "" select the system
// zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
