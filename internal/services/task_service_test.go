package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

func newTestTaskService(t *testing.T) (*TaskService, *recordingPublisher) {
	t.Helper()

	f := newSQLiteFixture(t)
	pub := &recordingPublisher{}
	return NewTaskService(f.manager, pub), pub
}

func TestTaskService_CreateAndFetch(t *testing.T) {
	svc, pub := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Buy milk")
	require.NoError(t, err)

	td, err := svc.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", td.Task.Title)

	assert.Len(t, svc.Tree(), 1)
	assert.Equal(t, 1, pub.count())

	latest, err := pub.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, task.ID, latest[0].Task.ID)
}

func TestTaskService_UnknownIDsAreNotFound(t *testing.T) {
	svc, pub := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Known")
	require.NoError(t, err)
	published := pub.count()

	_, err = svc.Task(404)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	_, err = svc.UpdateTask(ctx, 404, TaskUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, svc.CompleteTask(ctx, 404), apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, svc.DeleteTask(ctx, 404), apperrors.ErrTaskNotFound)
	_, err = svc.AddSubTask(ctx, 404, "x")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, svc.EditSubTask(ctx, 404, 1, "x"), apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, svc.EditSubTask(ctx, task.ID, 404, "x"), apperrors.ErrSubTaskNotFound)
	assert.ErrorIs(t, svc.CompleteSubTask(ctx, task.ID, 404), apperrors.ErrSubTaskNotFound)
	assert.ErrorIs(t, svc.DeleteSubTask(ctx, task.ID, 404), apperrors.ErrSubTaskNotFound)

	assert.Equal(t, published, pub.count())
}

func TestTaskService_UpdateTask(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Draft")
	require.NoError(t, err)

	title := "Final"
	description := "ship it"
	followUp := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	td, err := svc.UpdateTask(ctx, task.ID, TaskUpdate{
		Title:        &title,
		Description:  &description,
		FollowUpDate: &followUp,
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", td.Task.Title)
	require.NotNil(t, td.Task.Description)
	assert.Equal(t, "ship it", *td.Task.Description)
	require.NotNil(t, td.Task.FollowUpDate)
	assert.True(t, td.Task.FollowUpDate.Equal(followUp))

	td, err = svc.UpdateTask(ctx, task.ID, TaskUpdate{ClearFollowUpDate: true})
	require.NoError(t, err)
	assert.Nil(t, td.Task.FollowUpDate)
	assert.Equal(t, "Final", td.Task.Title)
}

func TestTaskService_UpdateTaskPublishesOnlyAfterAWrite(t *testing.T) {
	store := newFakeStore([]model.Task{{ID: 1, Title: "Draft"}}, nil)
	manager, err := NewTaskDetailManager(context.Background(), store, fakeSubTasks{store})
	require.NoError(t, err)
	pub := &recordingPublisher{}
	svc := NewTaskService(manager, pub)
	ctx := context.Background()

	_, err = svc.UpdateTask(ctx, 1, TaskUpdate{})
	require.NoError(t, err)
	assert.Zero(t, pub.count())

	title := "Final"
	store.failWith = errStore
	_, err = svc.UpdateTask(ctx, 1, TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, errStore)
	assert.Zero(t, pub.count())

	store.failWith = nil
	_, err = svc.UpdateTask(ctx, 1, TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.count())
}

func TestTaskService_SubTaskLifecycle(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "Move house")
	require.NoError(t, err)
	boxes, err := svc.AddSubTask(ctx, task.ID, "Buy boxes")
	require.NoError(t, err)
	van, err := svc.AddSubTask(ctx, task.ID, "Rent van")
	require.NoError(t, err)
	keys, err := svc.AddSubTask(ctx, task.ID, "Return keys")
	require.NoError(t, err)

	require.NoError(t, svc.EditSubTask(ctx, task.ID, van.ID, "Rent a big van"))
	require.NoError(t, svc.CompleteSubTask(ctx, task.ID, boxes.ID))
	require.NoError(t, svc.DeleteSubTask(ctx, task.ID, keys.ID))

	td, err := svc.Task(task.ID)
	require.NoError(t, err)
	require.Len(t, td.SubTasks, 1)
	assert.Equal(t, "Rent a big van", td.SubTasks[0].Description)

	require.NoError(t, svc.CompleteTask(ctx, task.ID))
	_, err = svc.Task(task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_ReloadPicksUpExternalWrites(t *testing.T) {
	f := newSQLiteFixture(t)
	svc := NewTaskService(f.manager, nil)
	ctx := context.Background()

	nt, err := model.BuildNewTask("Written elsewhere")
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(ctx, nt)
	require.NoError(t, err)
	assert.Empty(t, svc.Tree())

	require.NoError(t, svc.Reload(ctx))
	assert.Len(t, svc.Tree(), 1)
}

func TestTaskService_PublishFailureIsNotReturned(t *testing.T) {
	f := newSQLiteFixture(t)
	pub := &recordingPublisher{failWith: errStore}
	svc := NewTaskService(f.manager, pub)

	_, err := svc.CreateTask(context.Background(), "Still created")
	require.NoError(t, err)
	assert.Len(t, svc.Tree(), 1)
	assert.Equal(t, 1, pub.count())

	svc.PublishTree(context.Background())
	assert.Equal(t, 2, pub.count())
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	svc, _ := newTestTaskService(t)

	const concurrentCount = 20
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)
	for i := 0; i < concurrentCount; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.CreateTask(context.Background(), "Title"); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}
	assert.Len(t, svc.Tree(), concurrentCount)
}
