package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/julianstephens/lifetracker/internal/dates"
)

// JournalEntryCreate is the body of a journal create request
type JournalEntryCreate struct {
	Date    dates.Date `json:"date"`
	Content string     `json:"content"`
}

// JournalEntryUpdate is the body of a journal update request
type JournalEntryUpdate struct {
	Content *string `json:"content"`
}

// LifeTaskCreate is the body of a life task create request. Nil fields take
// their defaults.
type LifeTaskCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	TargetValue *int    `json:"target_value"`
}

// ProgressEntryCreate is the body of a progress submission
type ProgressEntryCreate struct {
	TaskID        string     `json:"task_id"`
	Date          dates.Date `json:"date"`
	ProgressValue int        `json:"progress_value"`
	Notes         *string    `json:"notes"`
}

// Optional is a field slot that remembers whether the client supplied it.
// Set is true whenever the key was present, including an explicit null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a populated slot.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Present reports whether the slot carries a non-null value.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// LifeTaskPatch is a partial update. Only slots the client supplied are
// applied; Description may be cleared with an explicit null.
type LifeTaskPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Category    Optional[string] `json:"category"`
	TargetValue Optional[int]    `json:"target_value"`
}

// Apply returns task with the populated slots of p applied.
func (p LifeTaskPatch) Apply(task LifeTask) LifeTask {
	if p.Name.Present() {
		task.Name = p.Name.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			task.Description = nil
		} else {
			desc := p.Description.Value
			task.Description = &desc
		}
	}
	if p.Category.Present() {
		task.Category = p.Category.Value
	}
	if p.TargetValue.Present() {
		task.TargetValue = p.TargetValue.Value
	}
	return task
}

// Empty reports whether no slot was supplied.
func (p LifeTaskPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Category.Set && !p.TargetValue.Set
}

// Validate reports the first missing required field.
func (in JournalEntryCreate) Validate() error {
	if in.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// Validate reports the first missing required field.
func (in JournalEntryUpdate) Validate() error {
	if in.Content == nil {
		return errors.New("content is required")
	}
	return nil
}

// Validate reports the first missing required field.
func (in LifeTaskCreate) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// Validate reports the first missing required field.
func (in ProgressEntryCreate) Validate() error {
	switch {
	case in.TaskID == "":
		return errors.New("task_id is required")
	case in.Date.IsZero():
		return errors.New("date is required")
	}
	return nil
}
