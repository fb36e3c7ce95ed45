package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"karigar/models"
)

func testWorkers(n int) []models.Worker {
	workers := make([]models.Worker, n)
	for i := range workers {
		workers[i] = models.Worker{
			WorkerID:  "w" + string(rune('a'+i)),
			PushToken: "tok",
		}
	}
	return workers
}

func testJob() *models.Job {
	return &models.Job{
		JobID:     "j1",
		Category:  "plumbing",
		Status:    models.JobPending,
		CreatedAt: time.Now(),
	}
}

type fakePusher struct {
	pushed []string
	fail   map[string]bool
}

func (f *fakePusher) Push(_ context.Context, w *models.Worker, _ *models.Notification) error {
	if f.fail[w.WorkerID] {
		return errors.New("device unreachable")
	}
	f.pushed = append(f.pushed, w.WorkerID)
	return nil
}

func TestDispatchNewJobOnePerWorker(t *testing.T) {
	var saved []models.Notification
	pusher := &fakePusher{}

	d := &Dispatcher{
		FindWorkers: func(context.Context, *models.Job) ([]models.Worker, error) {
			return testWorkers(3), nil
		},
		SaveNotification: func(_ context.Context, n *models.Notification) error {
			saved = append(saved, *n)
			return nil
		},
		Pusher: pusher,
	}

	if err := d.DispatchNewJob(context.Background(), testJob()); err != nil {
		t.Fatalf("DispatchNewJob error: %v", err)
	}

	if len(saved) != 3 {
		t.Fatalf("saved %d notifications, want 3", len(saved))
	}
	seen := make(map[string]bool)
	for _, n := range saved {
		if n.JobID != "j1" {
			t.Errorf("notification references job %q, want j1", n.JobID)
		}
		if n.Type != models.NotificationNewJob {
			t.Errorf("notification type = %q, want new_job", n.Type)
		}
		if n.IsRead {
			t.Error("freshly dispatched notification should be unread")
		}
		if seen[n.WorkerID] {
			t.Errorf("worker %s notified twice", n.WorkerID)
		}
		seen[n.WorkerID] = true
	}
	if len(pusher.pushed) != 3 {
		t.Errorf("pushed to %d workers, want 3", len(pusher.pushed))
	}
}

func TestDispatchPushFailureIsIsolated(t *testing.T) {
	var saved []models.Notification

	d := &Dispatcher{
		FindWorkers: func(context.Context, *models.Job) ([]models.Worker, error) {
			return testWorkers(3), nil
		},
		SaveNotification: func(_ context.Context, n *models.Notification) error {
			saved = append(saved, *n)
			return nil
		},
		Pusher: &fakePusher{fail: map[string]bool{"wb": true}},
	}

	if err := d.DispatchNewJob(context.Background(), testJob()); err != nil {
		t.Fatalf("push failure must not surface: %v", err)
	}
	if len(saved) != 3 {
		t.Errorf("saved %d notifications, want 3 despite a push failure", len(saved))
	}
}

func TestDispatchSaveFailureSkipsOnlyThatWorker(t *testing.T) {
	var saved []string
	pusher := &fakePusher{}

	d := &Dispatcher{
		FindWorkers: func(context.Context, *models.Job) ([]models.Worker, error) {
			return testWorkers(3), nil
		},
		SaveNotification: func(_ context.Context, n *models.Notification) error {
			if n.WorkerID == "wa" {
				return errors.New("write conflict")
			}
			saved = append(saved, n.WorkerID)
			return nil
		},
		Pusher: pusher,
	}

	if err := d.DispatchNewJob(context.Background(), testJob()); err != nil {
		t.Fatalf("DispatchNewJob error: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("saved %d notifications, want 2", len(saved))
	}
	for _, id := range pusher.pushed {
		if id == "wa" {
			t.Error("must not push a notification that was never persisted")
		}
	}
}

func TestDispatchSkipsPushWithoutToken(t *testing.T) {
	workers := testWorkers(2)
	workers[1].PushToken = ""
	pusher := &fakePusher{}

	d := &Dispatcher{
		FindWorkers: func(context.Context, *models.Job) ([]models.Worker, error) {
			return workers, nil
		},
		SaveNotification: func(context.Context, *models.Notification) error { return nil },
		Pusher:           pusher,
	}

	if err := d.DispatchNewJob(context.Background(), testJob()); err != nil {
		t.Fatalf("DispatchNewJob error: %v", err)
	}
	if len(pusher.pushed) != 1 || pusher.pushed[0] != "wa" {
		t.Errorf("pushed = %v, want only wa", pusher.pushed)
	}
}

func TestDispatchFindWorkersFailure(t *testing.T) {
	d := &Dispatcher{
		FindWorkers: func(context.Context, *models.Job) ([]models.Worker, error) {
			return nil, errors.New("store down")
		},
		SaveNotification: func(context.Context, *models.Notification) error {
			t.Fatal("must not save when matching failed")
			return nil
		},
	}

	if err := d.DispatchNewJob(context.Background(), testJob()); err == nil {
		t.Error("expected an error when the matching query fails")
	}
}
