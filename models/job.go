package models

import (
	"time"
)

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

type Job struct {
	JobID       string `bson:"jobid" json:"jobid"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`

	// Address and PreciseLocation are the exact service location. They are
	// stripped from worker-facing listings; see Sanitized.
	Address             string   `bson:"address" json:"address,omitempty"`
	PreciseLocation     GeoPoint `bson:"preciseLocation" json:"preciseLocation,omitzero"`
	ApproximateLocation string   `bson:"approximateLocation" json:"approximateLocation"`

	Budget        float64   `bson:"budget" json:"budget"`
	ScheduledDate time.Time `bson:"scheduledDate" json:"scheduledDate"`
	TimeStart     string    `bson:"timeStart" json:"timeStart"`
	TimeEnd       string    `bson:"timeEnd" json:"timeEnd"`

	Status         JobStatus `bson:"status" json:"status"`
	PostedBy       string    `bson:"postedBy" json:"postedBy"`
	AssignedWorker string    `bson:"assignedWorker" json:"assignedWorker,omitempty"`

	Rating *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Review string   `bson:"review,omitempty" json:"review,omitempty"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Sanitized returns a copy safe to show to anyone other than the posting
// client or the assigned worker: the exact address and coordinates are
// removed, leaving only the locality string.
func (j Job) Sanitized() Job {
	j.Address = ""
	j.PreciseLocation = GeoPoint{}
	return j
}

// NearbyJob is the redacted, worker-facing view of a pending job returned by
// nearby-job queries. It never carries the precise location.
type NearbyJob struct {
	JobID               string    `bson:"jobid" json:"jobid"`
	Title               string    `bson:"title" json:"title"`
	Description         string    `bson:"description" json:"description"`
	Category            string    `bson:"category" json:"category"`
	ApproximateLocation string    `bson:"approximateLocation" json:"approximateLocation"`
	DistanceKm          float64   `bson:"distanceKm" json:"distanceKm"`
	Budget              float64   `bson:"budget" json:"budget"`
	ScheduledDate       time.Time `bson:"scheduledDate" json:"scheduledDate"`
	TimeStart           string    `bson:"timeStart" json:"timeStart"`
	TimeEnd             string    `bson:"timeEnd" json:"timeEnd"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
}
