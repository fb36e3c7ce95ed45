// Package notify fans a new job out to its eligible workers: one persisted
// notification per worker plus a best-effort push.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"karigar/db"
	"karigar/matching"
	"karigar/models"
)

// Dispatcher delivers new-job notifications. The function fields exist so
// tests can run it against fakes; production code uses the package default.
type Dispatcher struct {
	FindWorkers      func(ctx context.Context, job *models.Job) ([]models.Worker, error)
	SaveNotification func(ctx context.Context, n *models.Notification) error
	Pusher           Pusher
}

// DispatchNewJob writes exactly one new_job notification per eligible worker.
// A failure for one worker is logged and never aborts the loop; push failures
// never affect the persisted notification.
func (d *Dispatcher) DispatchNewJob(ctx context.Context, job *models.Job) error {
	workers, err := d.FindWorkers(ctx, job)
	if err != nil {
		return fmt.Errorf("find eligible workers for job %s: %w", job.JobID, err)
	}

	for i := range workers {
		w := &workers[i]
		n := &models.Notification{
			NotificationID: uuid.NewString(),
			WorkerID:       w.WorkerID,
			Type:           models.NotificationNewJob,
			JobID:          job.JobID,
			Message:        fmt.Sprintf("New %s job available in your area!", job.Category),
			CreatedAt:      time.Now(),
		}

		if err := d.SaveNotification(ctx, n); err != nil {
			log.Printf("notify: failed to save notification for worker %s: %v", w.WorkerID, err)
			continue
		}

		if d.Pusher != nil && w.PushToken != "" {
			if err := d.Pusher.Push(ctx, w, n); err != nil {
				log.Printf("notify: push to worker %s failed: %v", w.WorkerID, err)
			}
		}
	}
	return nil
}

func saveNotification(ctx context.Context, n *models.Notification) error {
	_, err := db.NotificationCollection.InsertOne(ctx, n)
	return err
}

var defaultDispatcher = &Dispatcher{
	FindWorkers:      matching.FindEligibleWorkers,
	SaveNotification: saveNotification,
	Pusher:           NewRedisPusher(),
}

// DispatchNewJob runs the default dispatcher, detached from the creating
// request. Errors are logged only; job creation never fails on dispatch.
func DispatchNewJob(job *models.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := defaultDispatcher.DispatchNewJob(ctx, job); err != nil {
		log.Printf("notify: dispatch for job %s failed: %v", job.JobID, err)
	}
}
