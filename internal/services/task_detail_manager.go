package services

import (
	"context"
	"time"

	model "task-tracker.com/task-tracker/internal/models"
)

// TaskStore is the task side of the store consumed by TaskDetailManager.
type TaskStore interface {
	CreateTask(ctx context.Context, newTask model.NewTask) (*model.Task, error)
	EditTitle(ctx context.Context, id int64, title string) error
	EditDescription(ctx context.Context, id int64, description string) error
	SetFollowUpDate(ctx context.Context, id int64, day *time.Time) error
	CompleteTree(ctx context.Context, id int64) error
	DeleteTree(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]model.Task, error)
	AddSubTask(ctx context.Context, taskID int64, description string) (*model.SubTask, error)
}

// SubTaskStore is the subtask side of the store consumed by TaskDetailManager.
type SubTaskStore interface {
	EditDescription(ctx context.Context, id int64, description string) error
	Complete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]model.SubTask, error)
}

// TaskDetailManager keeps an in-memory tree of pending tasks and their
// subtasks in step with the store.
//
// Every mutation writes to the store first and patches the tree only once the
// write succeeds, so a failed call leaves the tree exactly as it was. Ids that
// are not in the tree are ignored: no store call is made and nil is returned.
//
// A manager is not safe for concurrent use.
type TaskDetailManager struct {
	tasks    TaskStore
	subTasks SubTaskStore
	list     []model.TaskDetail
}

func NewTaskDetailManager(ctx context.Context, tasks TaskStore, subTasks SubTaskStore) (*TaskDetailManager, error) {
	m := &TaskDetailManager{tasks: tasks, subTasks: subTasks}
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildTaskDetails groups subTasks under their owning task, keeping the order
// of both inputs. Subtasks whose task is not in tasks are dropped.
func BuildTaskDetails(tasks []model.Task, subTasks []model.SubTask) []model.TaskDetail {
	byTask := make(map[int64][]model.SubTask, len(tasks))
	for _, st := range subTasks {
		byTask[st.TaskID] = append(byTask[st.TaskID], st)
	}

	list := make([]model.TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		subs := byTask[task.ID]
		if subs == nil {
			subs = []model.SubTask{}
		}
		list = append(list, model.TaskDetail{Task: task, SubTasks: subs})
	}
	return list
}

// Initialize replaces the tree with a fresh load of pending rows. On error
// the current tree is kept.
func (m *TaskDetailManager) Initialize(ctx context.Context) error {
	tasks, err := m.tasks.ListPending(ctx)
	if err != nil {
		return err
	}
	subTasks, err := m.subTasks.ListPending(ctx)
	if err != nil {
		return err
	}

	m.list = BuildTaskDetails(tasks, subTasks)
	return nil
}

func (m *TaskDetailManager) List() []model.TaskDetail {
	out := make([]model.TaskDetail, len(m.list))
	for i, td := range m.list {
		out[i] = td.Clone()
	}
	return out
}

func (m *TaskDetailManager) Get(taskID int64) (model.TaskDetail, bool) {
	i := m.index(taskID)
	if i < 0 {
		return model.TaskDetail{}, false
	}
	return m.list[i].Clone(), true
}

func (m *TaskDetailManager) Len() int {
	return len(m.list)
}

func (m *TaskDetailManager) AddTask(ctx context.Context, title string) (*model.Task, error) {
	newTask, err := model.BuildNewTask(title)
	if err != nil {
		return nil, err
	}

	task, err := m.tasks.CreateTask(ctx, newTask)
	if err != nil {
		return nil, err
	}

	m.list = append(m.list, model.TaskDetail{Task: *task, SubTasks: []model.SubTask{}})
	created := *task
	return &created, nil
}

// AddSubTask returns nil, nil when taskID is not in the tree.
func (m *TaskDetailManager) AddSubTask(ctx context.Context, taskID int64, description string) (*model.SubTask, error) {
	td := m.find(taskID)
	if td == nil {
		return nil, nil
	}

	subTask, err := m.tasks.AddSubTask(ctx, taskID, description)
	if err != nil {
		return nil, err
	}

	td.SubTasks = append(td.SubTasks, *subTask)
	created := *subTask
	return &created, nil
}

func (m *TaskDetailManager) EditTaskTitle(ctx context.Context, taskID int64, title string) error {
	td := m.find(taskID)
	if td == nil {
		return nil
	}

	if err := m.tasks.EditTitle(ctx, taskID, title); err != nil {
		return err
	}

	td.Task.Title = title
	return nil
}

func (m *TaskDetailManager) EditTaskDescription(ctx context.Context, taskID int64, description string) error {
	td := m.find(taskID)
	if td == nil {
		return nil
	}

	if err := m.tasks.EditDescription(ctx, taskID, description); err != nil {
		return err
	}

	td.Task.Description = &description
	return nil
}

// SetTaskFollowUpDate sets or, with a nil day, clears the follow-up date.
func (m *TaskDetailManager) SetTaskFollowUpDate(ctx context.Context, taskID int64, day *time.Time) error {
	td := m.find(taskID)
	if td == nil {
		return nil
	}

	if err := m.tasks.SetFollowUpDate(ctx, taskID, day); err != nil {
		return err
	}

	if day == nil {
		td.Task.FollowUpDate = nil
		return nil
	}
	date := model.DateOf(*day)
	td.Task.FollowUpDate = &date
	return nil
}

func (m *TaskDetailManager) EditSubTaskDescription(ctx context.Context, taskID, subTaskID int64, description string) error {
	st := m.findSubTask(taskID, subTaskID)
	if st == nil {
		return nil
	}

	if err := m.subTasks.EditDescription(ctx, subTaskID, description); err != nil {
		return err
	}

	st.Description = description
	return nil
}

// CompleteSubTask marks the subtask completed and drops it from the tree.
func (m *TaskDetailManager) CompleteSubTask(ctx context.Context, taskID, subTaskID int64) error {
	td := m.find(taskID)
	if td == nil || td.subTaskIndex(subTaskID) < 0 {
		return nil
	}

	if err := m.subTasks.Complete(ctx, subTaskID); err != nil {
		return err
	}

	td.removeSubTask(subTaskID)
	return nil
}

// CompleteTask marks the task and all of its subtasks completed and drops the
// whole node from the tree.
func (m *TaskDetailManager) CompleteTask(ctx context.Context, taskID int64) error {
	i := m.index(taskID)
	if i < 0 {
		return nil
	}

	if err := m.tasks.CompleteTree(ctx, taskID); err != nil {
		return err
	}

	m.removeAt(i)
	return nil
}

func (m *TaskDetailManager) RemoveSubTask(ctx context.Context, taskID, subTaskID int64) error {
	td := m.find(taskID)
	if td == nil || td.subTaskIndex(subTaskID) < 0 {
		return nil
	}

	if err := m.subTasks.Delete(ctx, subTaskID); err != nil {
		return err
	}

	td.removeSubTask(subTaskID)
	return nil
}

// RemoveTask deletes the task together with its subtask rows.
func (m *TaskDetailManager) RemoveTask(ctx context.Context, taskID int64) error {
	i := m.index(taskID)
	if i < 0 {
		return nil
	}

	if err := m.tasks.DeleteTree(ctx, taskID); err != nil {
		return err
	}

	m.removeAt(i)
	return nil
}

func (m *TaskDetailManager) index(taskID int64) int {
	for i := range m.list {
		if m.list[i].Task.ID == taskID {
			return i
		}
	}
	return -1
}

func (m *TaskDetailManager) find(taskID int64) *taskDetail {
	i := m.index(taskID)
	if i < 0 {
		return nil
	}
	return (*taskDetail)(&m.list[i])
}

func (m *TaskDetailManager) findSubTask(taskID, subTaskID int64) *model.SubTask {
	td := m.find(taskID)
	if td == nil {
		return nil
	}
	j := td.subTaskIndex(subTaskID)
	if j < 0 {
		return nil
	}
	return &td.SubTasks[j]
}

func (m *TaskDetailManager) removeAt(i int) {
	m.list = append(m.list[:i], m.list[i+1:]...)
}

// taskDetail adds in-place helpers to a cached node.
type taskDetail model.TaskDetail

func (td *taskDetail) subTaskIndex(subTaskID int64) int {
	for j := range td.SubTasks {
		if td.SubTasks[j].ID == subTaskID {
			return j
		}
	}
	return -1
}

func (td *taskDetail) removeSubTask(subTaskID int64) {
	if j := td.subTaskIndex(subTaskID); j >= 0 {
		td.SubTasks = append(td.SubTasks[:j], td.SubTasks[j+1:]...)
	}
}
