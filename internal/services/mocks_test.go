package services

import (
	"context"
	"sync"
	"time"

	model "task-tracker.com/task-tracker/internal/models"
)

// fakeStore is an in-memory TaskStore and SubTaskStore that counts calls and
// can be told to fail every write.
type fakeStore struct {
	tasks    []model.Task
	subTasks []model.SubTask
	nextID   int64
	calls    map[string]int
	failWith error
}

func newFakeStore(tasks []model.Task, subTasks []model.SubTask) *fakeStore {
	return &fakeStore{
		tasks:    tasks,
		subTasks: subTasks,
		nextID:   1000,
		calls:    make(map[string]int),
	}
}

func (f *fakeStore) totalCalls() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeStore) record(name string) error {
	f.calls[name]++
	return f.failWith
}

func (f *fakeStore) CreateTask(ctx context.Context, newTask model.NewTask) (*model.Task, error) {
	if err := f.record("CreateTask"); err != nil {
		return nil, err
	}
	f.nextID++
	task := model.Task{ID: f.nextID, Title: newTask.Title()}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeStore) EditTitle(ctx context.Context, id int64, title string) error {
	return f.record("EditTitle")
}

func (f *fakeStore) EditDescription(ctx context.Context, id int64, description string) error {
	return f.record("EditDescription")
}

func (f *fakeStore) SetFollowUpDate(ctx context.Context, id int64, day *time.Time) error {
	return f.record("SetFollowUpDate")
}

func (f *fakeStore) CompleteTree(ctx context.Context, id int64) error {
	return f.record("CompleteTree")
}

func (f *fakeStore) DeleteTree(ctx context.Context, id int64) error {
	return f.record("DeleteTree")
}

func (f *fakeStore) ListPending(ctx context.Context) ([]model.Task, error) {
	if err := f.record("ListPendingTasks"); err != nil {
		return nil, err
	}
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *fakeStore) AddSubTask(ctx context.Context, taskID int64, description string) (*model.SubTask, error) {
	if err := f.record("AddSubTask"); err != nil {
		return nil, err
	}
	f.nextID++
	st := model.SubTask{ID: f.nextID, TaskID: taskID, Description: description}
	f.subTasks = append(f.subTasks, st)
	return &st, nil
}

// fakeSubTasks exposes the subtask half of fakeStore, whose method names
// overlap with the task half.
type fakeSubTasks struct {
	*fakeStore
}

func (f fakeSubTasks) EditDescription(ctx context.Context, id int64, description string) error {
	return f.record("EditSubTaskDescription")
}

func (f fakeSubTasks) Complete(ctx context.Context, id int64) error {
	return f.record("CompleteSubTask")
}

func (f fakeSubTasks) Delete(ctx context.Context, id int64) error {
	return f.record("DeleteSubTask")
}

func (f fakeSubTasks) ListPending(ctx context.Context) ([]model.SubTask, error) {
	if err := f.record("ListPendingSubTasks"); err != nil {
		return nil, err
	}
	return append([]model.SubTask(nil), f.subTasks...), nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published [][]model.TaskDetail
	failWith  error
}

func (p *recordingPublisher) Publish(ctx context.Context, tree []model.TaskDetail) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, tree)
	return p.failWith
}

func (p *recordingPublisher) Fetch(ctx context.Context) ([]model.TaskDetail, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.published) == 0 {
		return nil, nil
	}
	return p.published[len(p.published)-1], nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.published)
}

type fakeLister struct {
	mu    sync.Mutex
	tasks []model.Task
	err   error
	days  []time.Time
}

func (f *fakeLister) ListDueFollowUps(ctx context.Context, day time.Time) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.days = append(f.days, day)
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Task(nil), f.tasks...), nil
}
