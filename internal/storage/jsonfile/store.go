// Package jsonfile is a single-file JSON backend for small or throwaway
// datasets. The whole document is rewritten on every mutation.
package jsonfile

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/lifetracker/internal/dates"
	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
	"github.com/julianstephens/lifetracker/internal/storage/sqlstore"
)

const documentVersion = 1

// Records keep dates and timestamps as plain strings so that a hand-edited
// file with a bad value still loads.
type journalRecord struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type taskRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	TargetValue int     `json:"target_value"`
	CreatedAt   string  `json:"created_at"`
}

type progressRecord struct {
	ID            string  `json:"id"`
	TaskID        string  `json:"task_id"`
	Date          string  `json:"date"`
	ProgressValue int     `json:"progress_value"`
	Notes         *string `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

type document struct {
	Version        int              `json:"version"`
	JournalEntries []journalRecord  `json:"journal_entries"`
	LifeTasks      []taskRecord     `json:"life_tasks"`
	ProgressItems  []progressRecord `json:"progress_entries"`
}

type Store struct {
	path string

	mu  sync.RWMutex
	doc *document
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the file when missing and loads it otherwise.
func (s *Store) Init(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &document{Version: documentVersion}
	if err := s.write(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *Store) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'lifetracker migrate' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, documentVersion)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// clone copies the record slices so a mutation of the copy never reaches d.
func (d *document) clone() *document {
	return &document{
		Version:        d.Version,
		JournalEntries: slices.Clone(d.JournalEntries),
		LifeTasks:      slices.Clone(d.LifeTasks),
		ProgressItems:  slices.Clone(d.ProgressItems),
	}
}

// mutate applies fn to a copy of the document and swaps the copy in only
// after it is on disk. Callers hold mu.
func (s *Store) mutate(fn func(doc *document)) error {
	next := s.doc.clone()
	fn(next)
	if err := s.write(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// write stores doc through a temp file and rename.
func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func parseTime(v string) time.Time {
	t, err := sqlstore.ParseTimestamp(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func limitOrDefault(limit, n int) int {
	if limit <= 0 || limit > n {
		return n
	}
	return limit
}

// Journal entries

func (r journalRecord) model() models.JournalEntry {
	return models.JournalEntry{
		ID:        r.ID,
		Date:      dates.FromStored(r.Date),
		Content:   r.Content,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

func (s *Store) findJournal(date dates.Date) int {
	return slices.IndexFunc(s.doc.JournalEntries, func(r journalRecord) bool {
		return r.Date == date.String()
	})
}

func (s *Store) InsertJournalEntry(ctx context.Context, entry models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if s.findJournal(entry.Date) >= 0 {
		return fmt.Errorf("%w: journal entry for %s", apperrors.ErrConflict, entry.Date)
	}
	return s.mutate(func(doc *document) {
		doc.JournalEntries = append(doc.JournalEntries, journalRecord{
			ID:        entry.ID,
			Date:      entry.Date.String(),
			Content:   entry.Content,
			CreatedAt: sqlstore.FormatTimestamp(entry.CreatedAt),
			UpdatedAt: sqlstore.FormatTimestamp(entry.UpdatedAt),
		})
	})
}

func (s *Store) GetJournalEntry(ctx context.Context, date dates.Date) (models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.JournalEntry{}, err
	}

	i := s.findJournal(date)
	if i < 0 {
		return models.JournalEntry{}, apperrors.ErrNotFound
	}
	return s.doc.JournalEntries[i].model(), nil
}

func (s *Store) ListJournalEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	records := slices.Clone(s.doc.JournalEntries)
	slices.SortStableFunc(records, func(a, b journalRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})

	entries := make([]models.JournalEntry, 0, len(records))
	for _, r := range records[:limitOrDefault(limit, len(records))] {
		entries = append(entries, r.model())
	}
	return entries, nil
}

func (s *Store) UpdateJournalContent(ctx context.Context, date dates.Date, content string, updatedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	i := s.findJournal(date)
	if i < 0 {
		return 0, nil
	}
	err := s.mutate(func(doc *document) {
		doc.JournalEntries[i].Content = content
		doc.JournalEntries[i].UpdatedAt = sqlstore.FormatTimestamp(updatedAt)
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Store) DeleteJournalEntry(ctx context.Context, date dates.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	i := s.findJournal(date)
	if i < 0 {
		return 0, nil
	}
	err := s.mutate(func(doc *document) {
		doc.JournalEntries = slices.Delete(doc.JournalEntries, i, i+1)
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Store) CountJournalEntries(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}
	return len(s.doc.JournalEntries), nil
}

// Life tasks

func (r taskRecord) model() models.LifeTask {
	return models.LifeTask{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		TargetValue: r.TargetValue,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

func (s *Store) findTask(id string) int {
	return slices.IndexFunc(s.doc.LifeTasks, func(r taskRecord) bool { return r.ID == id })
}

func (s *Store) InsertLifeTask(ctx context.Context, task models.LifeTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	if s.findTask(task.ID) >= 0 {
		return fmt.Errorf("%w: life task %s", apperrors.ErrConflict, task.ID)
	}
	return s.mutate(func(doc *document) {
		doc.LifeTasks = append(doc.LifeTasks, taskRecord{
			ID:          task.ID,
			Name:        task.Name,
			Description: task.Description,
			Category:    task.Category,
			TargetValue: task.TargetValue,
			CreatedAt:   sqlstore.FormatTimestamp(task.CreatedAt),
		})
	})
}

func (s *Store) GetLifeTask(ctx context.Context, id string) (models.LifeTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.LifeTask{}, err
	}

	i := s.findTask(id)
	if i < 0 {
		return models.LifeTask{}, apperrors.ErrNotFound
	}
	return s.doc.LifeTasks[i].model(), nil
}

func (s *Store) ListLifeTasks(ctx context.Context, limit int) ([]models.LifeTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	records := slices.Clone(s.doc.LifeTasks)
	slices.SortStableFunc(records, func(a, b taskRecord) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	tasks := make([]models.LifeTask, 0, len(records))
	for _, r := range records[:limitOrDefault(limit, len(records))] {
		tasks = append(tasks, r.model())
	}
	return tasks, nil
}

func (s *Store) UpdateLifeTask(ctx context.Context, task models.LifeTask) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	i := s.findTask(task.ID)
	if i < 0 {
		return 0, nil
	}
	err := s.mutate(func(doc *document) {
		r := &doc.LifeTasks[i]
		r.Name = task.Name
		r.Description = task.Description
		r.Category = task.Category
		r.TargetValue = task.TargetValue
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Store) DeleteLifeTask(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	i := s.findTask(id)
	if i < 0 {
		return 0, nil
	}
	err := s.mutate(func(doc *document) {
		doc.LifeTasks = slices.Delete(doc.LifeTasks, i, i+1)
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Store) CountLifeTasks(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}
	return len(s.doc.LifeTasks), nil
}

// Progress entries

func (r progressRecord) model() models.ProgressEntry {
	return models.ProgressEntry{
		ID:            r.ID,
		TaskID:        r.TaskID,
		Date:          dates.FromStored(r.Date),
		ProgressValue: r.ProgressValue,
		Notes:         r.Notes,
		CreatedAt:     parseTime(r.CreatedAt),
	}
}

func (s *Store) findProgress(taskID string, date dates.Date) int {
	return slices.IndexFunc(s.doc.ProgressItems, func(r progressRecord) bool {
		return r.TaskID == taskID && r.Date == date.String()
	})
}

func (s *Store) UpsertProgressEntry(ctx context.Context, entry models.ProgressEntry) (models.ProgressEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.ProgressEntry{}, err
	}

	i := s.findProgress(entry.TaskID, entry.Date)
	err := s.mutate(func(doc *document) {
		if i >= 0 {
			r := &doc.ProgressItems[i]
			r.ProgressValue = entry.ProgressValue
			if entry.Notes != nil && *entry.Notes != "" {
				r.Notes = entry.Notes
			}
			return
		}
		doc.ProgressItems = append(doc.ProgressItems, progressRecord{
			ID:            entry.ID,
			TaskID:        entry.TaskID,
			Date:          entry.Date.String(),
			ProgressValue: entry.ProgressValue,
			Notes:         entry.Notes,
			CreatedAt:     sqlstore.FormatTimestamp(entry.CreatedAt),
		})
		i = len(doc.ProgressItems) - 1
	})
	if err != nil {
		return models.ProgressEntry{}, err
	}
	return s.doc.ProgressItems[i].model(), nil
}

func (s *Store) GetProgressEntry(ctx context.Context, taskID string, date dates.Date) (models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return models.ProgressEntry{}, err
	}

	i := s.findProgress(taskID, date)
	if i < 0 {
		return models.ProgressEntry{}, apperrors.ErrNotFound
	}
	return s.doc.ProgressItems[i].model(), nil
}

func (s *Store) ListProgressEntries(ctx context.Context, q storage.ProgressQuery) ([]models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	from, to := q.From.String(), q.To.String()
	var records []progressRecord
	for _, r := range s.doc.ProgressItems {
		if r.TaskID != q.TaskID {
			continue
		}
		if !q.From.IsZero() && r.Date < from {
			continue
		}
		if !q.To.IsZero() && r.Date > to {
			continue
		}
		records = append(records, r)
	}

	slices.SortStableFunc(records, func(a, b progressRecord) int {
		if q.Ascending {
			return cmp.Compare(a.Date, b.Date)
		}
		return cmp.Compare(b.Date, a.Date)
	})

	entries := make([]models.ProgressEntry, 0, len(records))
	for _, r := range records[:limitOrDefault(q.Limit, len(records))] {
		entries = append(entries, r.model())
	}
	return entries, nil
}

func (s *Store) DeleteProgressEntriesForTask(ctx context.Context, taskID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	removed := int64(0)
	for _, r := range s.doc.ProgressItems {
		if r.TaskID == taskID {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	err := s.mutate(func(doc *document) {
		doc.ProgressItems = slices.DeleteFunc(doc.ProgressItems, func(r progressRecord) bool {
			return r.TaskID == taskID
		})
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) CountProgressEntriesOn(ctx context.Context, date dates.Date) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}

	n := 0
	for _, r := range s.doc.ProgressItems {
		if r.Date == date.String() {
			n++
		}
	}
	return n, nil
}
