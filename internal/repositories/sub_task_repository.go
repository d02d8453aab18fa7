package repository

import (
	"context"

	"gorm.io/gorm"

	model "task-tracker.com/task-tracker/internal/models"
)

type SubTaskRepository struct {
	db *gorm.DB
}

func NewSubTaskRepository(db *gorm.DB) *SubTaskRepository {
	return &SubTaskRepository{db: db}
}

func (r *SubTaskRepository) EditDescription(ctx context.Context, id int64, description string) error {
	return r.db.WithContext(ctx).Model(&model.SubTask{}).
		Where("id = ?", id).
		Update("description", description).Error
}

func (r *SubTaskRepository) Complete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.SubTask{}).
		Where("id = ?", id).
		Update("completed", true).Error
}

func (r *SubTaskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SubTask{}).Error
}

func (r *SubTaskRepository) ListPending(ctx context.Context) ([]model.SubTask, error) {
	var subTasks []model.SubTask
	err := r.db.WithContext(ctx).
		Where("completed = ?", false).
		Order("id asc").
		Find(&subTasks).Error
	return subTasks, err
}
