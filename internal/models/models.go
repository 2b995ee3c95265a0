package models

import (
	"time"

	"github.com/julianstephens/lifetracker/internal/dates"
)

// JournalEntry is the single journal entry for a calendar day
type JournalEntry struct {
	ID        string     `json:"id"`
	Date      dates.Date `json:"date"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LifeTask is a user-defined goal that progress is tracked against
type LifeTask struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	TargetValue int       `json:"target_value"` // nominal upper bound, not enforced
	CreatedAt   time.Time `json:"created_at"`
}

// ProgressEntry records the progress made on a life task for one day
type ProgressEntry struct {
	ID            string     `json:"id"`
	TaskID        string     `json:"task_id"`
	Date          dates.Date `json:"date"`
	ProgressValue int        `json:"progress_value"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DashboardStats is the aggregate shown on the dashboard
type DashboardStats struct {
	TotalJournalEntries int  `json:"total_journal_entries"`
	TotalLifeTasks      int  `json:"total_life_tasks"`
	HasTodayJournal     bool `json:"has_today_journal"`
	TodayProgressCount  int  `json:"today_progress_count"`
}
