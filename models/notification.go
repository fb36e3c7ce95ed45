package models

import (
	"time"
)

type NotificationType string

const (
	NotificationNewJob         NotificationType = "new_job"
	NotificationJobUpdate      NotificationType = "job_update"
	NotificationLocationReveal NotificationType = "location_reveal"
	NotificationOther          NotificationType = "other"
)

// Notification lives in its own collection keyed by workerId so each append
// is a single insert and concurrent dispatches cannot lose entries.
type Notification struct {
	NotificationID string           `bson:"notificationid" json:"notificationid"`
	WorkerID       string           `bson:"workerId" json:"workerId"`
	Type           NotificationType `bson:"type" json:"type"`
	JobID          string           `bson:"jobid,omitempty" json:"jobid,omitempty"`
	Message        string           `bson:"message" json:"message"`
	IsRead         bool             `bson:"isRead" json:"isRead"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
}
