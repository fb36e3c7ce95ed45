package jobs

import (
	"fmt"
	"net/http"

	"karigar/apperrors"
	"karigar/models"
)

// Allowed status edges. Accepting a job (pending -> in_progress) goes through
// the atomic accept path, never through a plain status update.
var allowedTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobPending:    {models.JobInProgress, models.JobCancelled},
	models.JobInProgress: {models.JobCompleted, models.JobCancelled},
}

func CanTransition(from, to models.JobStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanUpdateStatus checks both the edge set and who is allowed to walk it:
// completion belongs to the assigned worker, cancelling a pending job to the
// posting client, and cancelling an in-progress job to either side.
func CanUpdateStatus(job *models.Job, userID, workerID string, to models.JobStatus) error {
	if !to.Valid() {
		return apperrors.Validation("status", "unknown status")
	}
	if to == models.JobInProgress {
		return apperrors.Validation("status", "jobs are taken via accept, not a status update")
	}
	if !CanTransition(job.Status, to) {
		return apperrors.New(http.StatusBadRequest,
			fmt.Sprintf("cannot move a %s job to %s", job.Status, to))
	}

	isPoster := userID != "" && job.PostedBy == userID
	isAssignee := workerID != "" && job.AssignedWorker == workerID

	switch to {
	case models.JobCompleted:
		if !isAssignee {
			return apperrors.ErrForbidden
		}
	case models.JobCancelled:
		if job.Status == models.JobPending {
			if !isPoster {
				return apperrors.ErrForbidden
			}
		} else if !isPoster && !isAssignee {
			return apperrors.ErrForbidden
		}
	}
	return nil
}
