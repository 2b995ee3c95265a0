package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/lifetracker/internal/dates"
	"github.com/julianstephens/lifetracker/internal/models"
)

const journalColumns = "id, date, content, created_at, updated_at"

func (s *Store) InsertJournalEntry(ctx context.Context, entry models.JournalEntry) error {
	_, err := s.exec(ctx, `
		INSERT INTO journal_entries (id, date, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Content,
		FormatTimestamp(entry.CreatedAt), FormatTimestamp(entry.UpdatedAt))
	return s.classify(err)
}

func (s *Store) GetJournalEntry(ctx context.Context, date dates.Date) (models.JournalEntry, error) {
	row := s.queryRow(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE date = ?`, date)
	e, err := scanJournalEntry(row)
	if err != nil {
		return models.JournalEntry{}, s.classify(err)
	}
	return e, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	rows, err := s.query(ctx, `
		SELECT `+journalColumns+` FROM journal_entries
		ORDER BY date DESC
		LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) UpdateJournalContent(ctx context.Context, date dates.Date, content string, updatedAt time.Time) (int64, error) {
	result, err := s.exec(ctx, `
		UPDATE journal_entries SET content = ?, updated_at = ? WHERE date = ?`,
		content, FormatTimestamp(updatedAt), date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) DeleteJournalEntry(ctx context.Context, date dates.Date) (int64, error) {
	result, err := s.exec(ctx, `DELETE FROM journal_entries WHERE date = ?`, date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) CountJournalEntries(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM journal_entries`)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row scanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.Date, &e.Content, &createdAt, &updatedAt); err != nil {
		return models.JournalEntry{}, err
	}

	var err error
	e.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse created_at for journal entry %s: %w", e.ID, err)
	}
	e.UpdatedAt, err = ParseTimestamp(updatedAt)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse updated_at for journal entry %s: %w", e.ID, err)
	}
	return e, nil
}
