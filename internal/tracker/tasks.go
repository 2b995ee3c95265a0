package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/lifetracker/internal/constants"
	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/logger"
	"github.com/julianstephens/lifetracker/internal/models"
	"github.com/julianstephens/lifetracker/internal/storage"
)

type taskStore interface {
	storage.LifeTaskStore
	DeleteProgressEntriesForTask(ctx context.Context, taskID string) (int64, error)
}

// LifeTasks manages user-defined goals.
type LifeTasks struct {
	store taskStore
	clock *clock
}

// Create stores a new task. Category defaults to "General" when absent or
// empty, target_value to 100 when absent.
func (l *LifeTasks) Create(ctx context.Context, in models.LifeTaskCreate) (models.LifeTask, error) {
	task := models.LifeTask{
		ID:          l.clock.newID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    constants.DefaultCategory,
		TargetValue: constants.DefaultTargetValue,
		CreatedAt:   l.clock.stamp(),
	}
	if in.Category != nil && *in.Category != "" {
		task.Category = *in.Category
	}
	if in.TargetValue != nil {
		task.TargetValue = *in.TargetValue
	}

	if err := l.store.InsertLifeTask(ctx, task); err != nil {
		return models.LifeTask{}, fmt.Errorf("failed to create life task: %w", err)
	}
	return task, nil
}

// List returns tasks newest first.
func (l *LifeTasks) List(ctx context.Context) ([]models.LifeTask, error) {
	tasks, err := l.store.ListLifeTasks(ctx, constants.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list life tasks: %w", err)
	}
	return tasks, nil
}

func (l *LifeTasks) Get(ctx context.Context, id string) (models.LifeTask, error) {
	task, err := l.store.GetLifeTask(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.LifeTask{}, apperrors.NotFound(constants.MessageTaskNotFound)
		}
		return models.LifeTask{}, fmt.Errorf("failed to get life task: %w", err)
	}
	return task, nil
}

// Update applies the supplied slots of patch and returns the stored task.
func (l *LifeTasks) Update(ctx context.Context, id string, patch models.LifeTaskPatch) (models.LifeTask, error) {
	task, err := l.Get(ctx, id)
	if err != nil {
		return models.LifeTask{}, err
	}
	if patch.Empty() {
		return task, nil
	}

	n, err := l.store.UpdateLifeTask(ctx, patch.Apply(task))
	if err != nil {
		return models.LifeTask{}, fmt.Errorf("failed to update life task: %w", err)
	}
	if n == 0 {
		return models.LifeTask{}, apperrors.NotFound(constants.MessageTaskNotFound)
	}
	return l.Get(ctx, id)
}

// Delete removes the task and every progress entry recorded against it.
// Progress is removed first; a failure deleting the task afterwards is not
// rolled back.
func (l *LifeTasks) Delete(ctx context.Context, id string) error {
	if _, err := l.Get(ctx, id); err != nil {
		return err
	}

	removed, err := l.store.DeleteProgressEntriesForTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete progress entries: %w", err)
	}
	logger.Debug("Deleted progress entries for task", "task_id", id, "count", removed)

	n, err := l.store.DeleteLifeTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete life task: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound(constants.MessageTaskNotFound)
	}
	return nil
}
