package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"karigar/models"
	"karigar/rdx"
)

// Pusher is the best-effort push transport. Delivery is fire-and-forget; the
// persisted notification is the source of truth.
type Pusher interface {
	Push(ctx context.Context, w *models.Worker, n *models.Notification) error
}

type pushPayload struct {
	WorkerID string                  `json:"workerId"`
	Type     models.NotificationType `json:"type"`
	JobID    string                  `json:"jobid,omitempty"`
	Message  string                  `json:"message"`
}

// RedisPusher publishes push payloads to a per-worker Redis channel. A relay
// subscribed to push:worker:* forwards them to devices.
type RedisPusher struct {
	Client *redis.Client
}

func NewRedisPusher() *RedisPusher {
	return &RedisPusher{Client: rdx.Conn}
}

func (p *RedisPusher) Push(ctx context.Context, w *models.Worker, n *models.Notification) error {
	data, err := json.Marshal(pushPayload{
		WorkerID: w.WorkerID,
		Type:     n.Type,
		JobID:    n.JobID,
		Message:  n.Message,
	})
	if err != nil {
		return err
	}
	return p.Client.Publish(ctx, "push:worker:"+w.WorkerID, data).Err()
}

// StartPushRelay logs push traffic for local runs. Listens on the pattern
// channel until the context is cancelled.
func StartPushRelay(ctx context.Context, client *redis.Client) {
	sub := client.PSubscribe(ctx, "push:worker:*")
	defer sub.Close()

	log.Println("[PushRelay] Listening for push events...")
	for {
		select {
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			log.Printf("[PushRelay] %s -> %s", msg.Channel, msg.Payload)
		case <-ctx.Done():
			return
		}
	}
}
