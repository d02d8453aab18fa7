package services

import (
	"context"
	"log"
	"sync"
	"time"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

type FollowUpLister interface {
	ListDueFollowUps(ctx context.Context, day time.Time) ([]model.Task, error)
}

// ReminderService polls for pending tasks whose follow-up date has arrived and
// hands each one to a notifier, at most once per task per day.
type ReminderService struct {
	repo     FollowUpLister
	interval time.Duration
	notify   func(model.Task)
	now      func() time.Time

	notified map[int64]time.Time
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewReminderService starts the polling loop. A nil notify logs each reminder.
func NewReminderService(repo FollowUpLister, interval time.Duration, notify func(model.Task)) *ReminderService {
	if notify == nil {
		notify = logReminder
	}

	r := &ReminderService{
		repo:     repo,
		interval: interval,
		notify:   notify,
		now:      time.Now,
		notified: make(map[int64]time.Time),
		stop:     make(chan struct{}),
	}

	r.wg.Add(1)
	go r.loop()

	return r
}

func (r *ReminderService) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.checkOnce(context.Background())
		case <-r.stop:
			return
		}
	}
}

func (r *ReminderService) checkOnce(ctx context.Context) {
	today := model.DateOf(r.now())

	tasks, err := r.repo.ListDueFollowUps(ctx, today)
	if err != nil {
		log.Printf("reminder: failed to list due follow-ups: %v", err)
		return
	}

	due := make(map[int64]struct{}, len(tasks))
	for _, task := range tasks {
		due[task.ID] = struct{}{}
	}
	for id := range r.notified {
		if _, ok := due[id]; !ok {
			delete(r.notified, id)
		}
	}

	for _, task := range tasks {
		if day, ok := r.notified[task.ID]; ok && day.Equal(today) {
			continue
		}
		r.notified[task.ID] = today
		r.notify(task)
	}
}

func (r *ReminderService) Shutdown(ctx context.Context) {
	r.stopOnce.Do(func() { close(r.stop) })

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("reminder loop shut down cleanly")
	case <-ctx.Done():
		log.Println("reminder loop shutdown timed out")
	}
}

func logReminder(task model.Task) {
	due := "today"
	if task.FollowUpDate != nil {
		due = task.FollowUpDate.Format(constants.DateLayout)
	}
	log.Printf("reminder: task %d %q follow-up due %s", task.ID, task.Title, due)
}
