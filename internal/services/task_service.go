package services

import (
	"context"
	"log"
	"sync"
	"time"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	"task-tracker.com/task-tracker/internal/snapshot"
)

// TaskService serializes concurrent callers onto a TaskDetailManager. Unlike
// the manager it reports unknown ids as not-found errors, and after every
// successful change it publishes the tree when a publisher is configured.
type TaskService struct {
	mu        sync.Mutex
	manager   *TaskDetailManager
	publisher snapshot.Publisher
}

// TaskUpdate holds the fields to change. Nil fields are left alone.
type TaskUpdate struct {
	Title             *string
	Description       *string
	FollowUpDate      *time.Time
	ClearFollowUpDate bool
}

func NewTaskService(manager *TaskDetailManager, publisher snapshot.Publisher) *TaskService {
	return &TaskService{
		manager:   manager,
		publisher: publisher,
	}
}

func (s *TaskService) Tree() []model.TaskDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.manager.List()
}

func (s *TaskService) Task(taskID int64) (model.TaskDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, ok := s.manager.Get(taskID)
	if !ok {
		return model.TaskDetail{}, apperrors.ErrTaskNotFound
	}
	return td, nil
}

func (s *TaskService) CreateTask(ctx context.Context, title string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.manager.AddTask(ctx, title)
	if err != nil {
		return nil, err
	}

	s.publish(ctx)
	return task, nil
}

// UpdateTask applies the fields of update one at a time. If a write fails,
// the fields written before it stay applied. The tree is published only when
// at least one field was written.
func (s *TaskService) UpdateTask(ctx context.Context, taskID int64, update TaskUpdate) (model.TaskDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.manager.Get(taskID); !ok {
		return model.TaskDetail{}, apperrors.ErrTaskNotFound
	}

	applied := false
	defer func() {
		if applied {
			s.publish(ctx)
		}
	}()

	if update.Title != nil {
		if err := s.manager.EditTaskTitle(ctx, taskID, *update.Title); err != nil {
			return model.TaskDetail{}, err
		}
		applied = true
	}
	if update.Description != nil {
		if err := s.manager.EditTaskDescription(ctx, taskID, *update.Description); err != nil {
			return model.TaskDetail{}, err
		}
		applied = true
	}
	if update.FollowUpDate != nil || update.ClearFollowUpDate {
		if err := s.manager.SetTaskFollowUpDate(ctx, taskID, update.FollowUpDate); err != nil {
			return model.TaskDetail{}, err
		}
		applied = true
	}

	td, _ := s.manager.Get(taskID)
	return td, nil
}

func (s *TaskService) CompleteTask(ctx context.Context, taskID int64) error {
	return s.mutateTask(ctx, taskID, func() error {
		return s.manager.CompleteTask(ctx, taskID)
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID int64) error {
	return s.mutateTask(ctx, taskID, func() error {
		return s.manager.RemoveTask(ctx, taskID)
	})
}

func (s *TaskService) AddSubTask(ctx context.Context, taskID int64, description string) (*model.SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.manager.Get(taskID); !ok {
		return nil, apperrors.ErrTaskNotFound
	}

	subTask, err := s.manager.AddSubTask(ctx, taskID, description)
	if err != nil {
		return nil, err
	}

	s.publish(ctx)
	return subTask, nil
}

func (s *TaskService) EditSubTask(ctx context.Context, taskID, subTaskID int64, description string) error {
	return s.mutateSubTask(ctx, taskID, subTaskID, func() error {
		return s.manager.EditSubTaskDescription(ctx, taskID, subTaskID, description)
	})
}

func (s *TaskService) CompleteSubTask(ctx context.Context, taskID, subTaskID int64) error {
	return s.mutateSubTask(ctx, taskID, subTaskID, func() error {
		return s.manager.CompleteSubTask(ctx, taskID, subTaskID)
	})
}

func (s *TaskService) DeleteSubTask(ctx context.Context, taskID, subTaskID int64) error {
	return s.mutateSubTask(ctx, taskID, subTaskID, func() error {
		return s.manager.RemoveSubTask(ctx, taskID, subTaskID)
	})
}

// Reload rebuilds the tree from the store.
func (s *TaskService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.Initialize(ctx); err != nil {
		return err
	}

	s.publish(ctx)
	return nil
}

// PublishTree pushes the current tree to the publisher.
func (s *TaskService) PublishTree(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publish(ctx)
}

func (s *TaskService) mutateTask(ctx context.Context, taskID int64, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.manager.Get(taskID); !ok {
		return apperrors.ErrTaskNotFound
	}
	if err := mutate(); err != nil {
		return err
	}

	s.publish(ctx)
	return nil
}

func (s *TaskService) mutateSubTask(ctx context.Context, taskID, subTaskID int64, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, ok := s.manager.Get(taskID)
	if !ok {
		return apperrors.ErrTaskNotFound
	}
	if !hasSubTask(td, subTaskID) {
		return apperrors.ErrSubTaskNotFound
	}
	if err := mutate(); err != nil {
		return err
	}

	s.publish(ctx)
	return nil
}

func (s *TaskService) publish(ctx context.Context) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, s.manager.List()); err != nil {
		log.Printf("snapshot: failed to publish task tree: %v", err)
	}
}

func hasSubTask(td model.TaskDetail, subTaskID int64) bool {
	for _, st := range td.SubTasks {
		if st.ID == subTaskID {
			return true
		}
	}
	return false
}
