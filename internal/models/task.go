package model

import (
	"strings"
	"time"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

type Task struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  *string    `json:"description"`
	FollowUpDate *time.Time `gorm:"type:date" json:"follow_up_date"`
	LastUpdate   *time.Time `gorm:"type:date" json:"last_update"`
	Completed    bool       `gorm:"not null" json:"completed"`
}

type SubTask struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID      int64  `gorm:"not null;index" json:"task_id"`
	Description string `gorm:"not null" json:"description"`
	Completed   bool   `gorm:"not null" json:"completed"`
}

// TaskDetail pairs a task with its pending subtasks. It is a view and is
// never persisted.
type TaskDetail struct {
	Task     Task      `json:"task"`
	SubTasks []SubTask `json:"subtasks"`
}

// Clone returns a copy that shares no memory with d.
func (d TaskDetail) Clone() TaskDetail {
	out := TaskDetail{Task: d.Task, SubTasks: make([]SubTask, len(d.SubTasks))}
	copy(out.SubTasks, d.SubTasks)
	if d.Task.Description != nil {
		desc := *d.Task.Description
		out.Task.Description = &desc
	}
	if d.Task.FollowUpDate != nil {
		day := *d.Task.FollowUpDate
		out.Task.FollowUpDate = &day
	}
	if d.Task.LastUpdate != nil {
		day := *d.Task.LastUpdate
		out.Task.LastUpdate = &day
	}
	return out
}

// DateOf drops the time of day from t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTask is a validated title waiting to be inserted. The title is kept
// exactly as given; only a blank one is rejected.
type NewTask struct {
	title string
}

func BuildNewTask(title string) (NewTask, error) {
	if strings.TrimSpace(title) == "" {
		return NewTask{}, apperrors.ErrTitleRequired
	}
	return NewTask{title: title}, nil
}

func (n NewTask) Title() string {
	return n.title
}
