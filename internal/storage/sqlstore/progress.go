package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

const progressColumns = "id, task_id, date, progress_value, notes, created_at"

func (s *Store) UpsertProgressEntry(ctx context.Context, entry models.ProgressEntry) (models.ProgressEntry, error) {
	// Empty notes never overwrite what is already stored.
	_, err := s.exec(ctx, `
		INSERT INTO progress_entries (id, task_id, date, progress_value, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, date) DO UPDATE SET
			progress_value = excluded.progress_value,
			notes = CASE
				WHEN excluded.notes IS NOT NULL AND excluded.notes <> '' THEN excluded.notes
				ELSE progress_entries.notes
			END`,
		entry.ID, entry.TaskID, entry.Date, entry.ProgressValue, nullString(entry.Notes),
		FormatTimestamp(entry.CreatedAt))
	if err != nil {
		return models.ProgressEntry{}, s.classify(err)
	}
	return s.GetProgressEntry(ctx, entry.TaskID, entry.Date)
}

func (s *Store) GetProgressEntry(ctx context.Context, taskID string, date dates.Date) (models.ProgressEntry, error) {
	row := s.queryRow(ctx, `
		SELECT `+progressColumns+` FROM progress_entries
		WHERE task_id = ? AND date = ?`, taskID, date)
	e, err := scanProgressEntry(row)
	if err != nil {
		return models.ProgressEntry{}, s.classify(err)
	}
	return e, nil
}

func (s *Store) ListProgressEntries(ctx context.Context, q storage.ProgressQuery) ([]models.ProgressEntry, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + progressColumns + ` FROM progress_entries WHERE task_id = ?`)
	args := []any{q.TaskID}

	if !q.From.IsZero() {
		b.WriteString(` AND date >= ?`)
		args = append(args, q.From)
	}
	if !q.To.IsZero() {
		b.WriteString(` AND date <= ?`)
		args = append(args, q.To)
	}
	if q.Ascending {
		b.WriteString(` ORDER BY date ASC`)
	} else {
		b.WriteString(` ORDER BY date DESC`)
	}
	b.WriteString(` LIMIT ?`)
	args = append(args, limitOrDefault(q.Limit))

	rows, err := s.query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ProgressEntry{}
	for rows.Next() {
		e, err := scanProgressEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteProgressEntriesForTask(ctx context.Context, taskID string) (int64, error) {
	result, err := s.exec(ctx, `DELETE FROM progress_entries WHERE task_id = ?`, taskID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) CountProgressEntriesOn(ctx context.Context, date dates.Date) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM progress_entries WHERE date = ?`, date)
}

func scanProgressEntry(row scanner) (models.ProgressEntry, error) {
	var e models.ProgressEntry
	var notes sql.NullString
	var createdAt string

	if err := row.Scan(&e.ID, &e.TaskID, &e.Date, &e.ProgressValue, &notes, &createdAt); err != nil {
		return models.ProgressEntry{}, err
	}
	e.Notes = stringPtr(notes)

	var err error
	e.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("failed to parse created_at for progress entry %s: %w", e.ID, err)
	}
	return e, nil
}
