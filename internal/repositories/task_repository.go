package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "task-tracker.com/task-tracker/internal/models"
)

// TaskRepository runs the per-task statements. Every method issues a single
// statement, except CompleteTree and DeleteTree which wrap two in a
// transaction. Store errors are returned as-is, and a statement that matches
// no rows is not an error.
type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

// WithClock replaces the clock used to stamp last_update.
func (r *TaskRepository) WithClock(now func() time.Time) *TaskRepository {
	r.now = now
	return r
}

func (r *TaskRepository) today() time.Time {
	return model.DateOf(r.now())
}

func (r *TaskRepository) CreateTask(ctx context.Context, newTask model.NewTask) (*model.Task, error) {
	today := r.today()
	task := &model.Task{
		Title:      newTask.Title(),
		Completed:  false,
		LastUpdate: &today,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) EditTitle(ctx context.Context, id int64, title string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("title", title).Error
}

func (r *TaskRepository) EditDescription(ctx context.Context, id int64, description string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("description", description).Error
}

// SetFollowUpDate stores the date part of day, or clears it when day is nil.
func (r *TaskRepository) SetFollowUpDate(ctx context.Context, id int64, day *time.Time) error {
	var value interface{} = gorm.Expr("NULL")
	if day != nil {
		value = model.DateOf(*day)
	}

	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("follow_up_date", value).Error
}

func (r *TaskRepository) Complete(ctx context.Context, id int64) error {
	return completeTask(r.db.WithContext(ctx), id, r.today())
}

func (r *TaskRepository) CompleteChildren(ctx context.Context, id int64) error {
	return completeChildren(r.db.WithContext(ctx), id)
}

// CompleteTree completes the task and all of its subtasks atomically.
func (r *TaskRepository) CompleteTree(ctx context.Context, id int64) error {
	today := r.today()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := completeTask(tx, id, today); err != nil {
			return err
		}
		return completeChildren(tx, id)
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return deleteTask(r.db.WithContext(ctx), id)
}

func (r *TaskRepository) DeleteChildren(ctx context.Context, id int64) error {
	return deleteChildren(r.db.WithContext(ctx), id)
}

// DeleteTree deletes the subtask rows of the task and then the task row, in
// one transaction.
func (r *TaskRepository) DeleteTree(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		return deleteTask(tx, id)
	})
}

func (r *TaskRepository) ListPending(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("completed = ?", false).
		Order("id asc").
		Find(&tasks).Error
	return tasks, err
}

// ListDueFollowUps returns pending tasks whose follow-up date is on or before
// day.
func (r *TaskRepository) ListDueFollowUps(ctx context.Context, day time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("completed = ? AND follow_up_date IS NOT NULL AND follow_up_date <= ?", false, model.DateOf(day)).
		Order("follow_up_date asc, id asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) AddSubTask(ctx context.Context, taskID int64, description string) (*model.SubTask, error) {
	subTask := &model.SubTask{
		TaskID:      taskID,
		Description: description,
		Completed:   false,
	}

	if err := r.db.WithContext(ctx).Create(subTask).Error; err != nil {
		return nil, err
	}

	return subTask, nil
}

func completeTask(db *gorm.DB, id int64, today time.Time) error {
	return db.Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":   true,
			"last_update": today,
		}).Error
}

func completeChildren(db *gorm.DB, taskID int64) error {
	return db.Model(&model.SubTask{}).
		Where("task_id = ?", taskID).
		Update("completed", true).Error
}

func deleteTask(db *gorm.DB, id int64) error {
	return db.Where("id = ?", id).Delete(&model.Task{}).Error
}

func deleteChildren(db *gorm.DB, taskID int64) error {
	return db.Where("task_id = ?", taskID).Delete(&model.SubTask{}).Error
}
