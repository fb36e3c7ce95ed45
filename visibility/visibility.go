// Package visibility decides when the assigned worker may see a job's exact
// coordinates. The decision is a pure function of (job, worker, now) and is
// recomputed on every call, so repeated polling and clock skew are harmless.
package visibility

import (
	"time"

	"karigar/apperrors"
	"karigar/models"
)

// RevealLead is how long before the scheduled start the exact location opens up.
const RevealLead = 3 * time.Hour

const pendingMessage = "Exact location is shared 3 hours before the scheduled start"

type Result struct {
	Available bool             `json:"available"`
	Message   string           `json:"message,omitempty"`
	RevealAt  *time.Time       `json:"revealAt,omitempty"`
	Location  *models.GeoPoint `json:"location,omitempty"`
	Address   string           `json:"address,omitempty"`
}

// ForWorker evaluates the disclosure rules in order: assignment, job status,
// then the reveal window.
func ForWorker(job *models.Job, workerID string, now time.Time) (Result, error) {
	if job.AssignedWorker == "" || job.AssignedWorker != workerID {
		return Result{}, apperrors.ErrNotAssigned
	}

	if job.Status != models.JobPending && job.Status != models.JobInProgress {
		// Completed or cancelled jobs never disclose further; no revealAt.
		return Result{}, apperrors.ErrJobNotActive
	}

	revealAt := RevealAt(job)
	if !now.Before(revealAt) {
		loc := job.PreciseLocation
		return Result{Available: true, Location: &loc, Address: job.Address}, nil
	}

	return Result{Available: false, Message: pendingMessage, RevealAt: &revealAt}, nil
}

// RevealAt is scheduledDate+timeStart minus RevealLead. An unparseable
// timeStart falls back to the start of the scheduled day.
func RevealAt(job *models.Job) time.Time {
	return StartTime(job).Add(-RevealLead)
}

// StartTime combines the job's scheduled date with its timeStart ("15:04").
func StartTime(job *models.Job) time.Time {
	day := job.ScheduledDate
	t, err := time.Parse("15:04", job.TimeStart)
	if err != nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
