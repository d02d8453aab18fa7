package snapshot

import (
	"context"
	"errors"

	model "task-tracker.com/task-tracker/internal/models"
)

// Publisher stores the latest task tree somewhere other processes can read it.
type Publisher interface {
	Publish(ctx context.Context, tree []model.TaskDetail) error

	Fetch(ctx context.Context) ([]model.TaskDetail, error)
}

var ErrNoSnapshot = errors.New("no task tree snapshot published")
