package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/lifetracker/internal/models"
)

const lifeTaskColumns = "id, name, description, category, target_value, created_at"

func (s *Store) InsertLifeTask(ctx context.Context, task models.LifeTask) error {
	_, err := s.exec(ctx, `
		INSERT INTO life_tasks (id, name, description, category, target_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Name, nullString(task.Description), task.Category, task.TargetValue,
		FormatTimestamp(task.CreatedAt))
	return s.classify(err)
}

func (s *Store) GetLifeTask(ctx context.Context, id string) (models.LifeTask, error) {
	row := s.queryRow(ctx, `SELECT `+lifeTaskColumns+` FROM life_tasks WHERE id = ?`, id)
	t, err := scanLifeTask(row)
	if err != nil {
		return models.LifeTask{}, s.classify(err)
	}
	return t, nil
}

func (s *Store) ListLifeTasks(ctx context.Context, limit int) ([]models.LifeTask, error) {
	rows, err := s.query(ctx, `
		SELECT `+lifeTaskColumns+` FROM life_tasks
		ORDER BY created_at DESC
		LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.LifeTask{}
	for rows.Next() {
		t, err := scanLifeTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateLifeTask(ctx context.Context, task models.LifeTask) (int64, error) {
	result, err := s.exec(ctx, `
		UPDATE life_tasks
		SET name = ?, description = ?, category = ?, target_value = ?
		WHERE id = ?`,
		task.Name, nullString(task.Description), task.Category, task.TargetValue, task.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) DeleteLifeTask(ctx context.Context, id string) (int64, error) {
	result, err := s.exec(ctx, `DELETE FROM life_tasks WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) CountLifeTasks(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM life_tasks`)
}

func scanLifeTask(row scanner) (models.LifeTask, error) {
	var t models.LifeTask
	var description sql.NullString
	var createdAt string

	if err := row.Scan(&t.ID, &t.Name, &description, &t.Category, &t.TargetValue, &createdAt); err != nil {
		return models.LifeTask{}, err
	}
	t.Description = stringPtr(description)

	var err error
	t.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.LifeTask{}, fmt.Errorf("failed to parse created_at for life task %s: %w", t.ID, err)
	}
	return t, nil
}
