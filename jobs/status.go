package jobs

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"karigar/apperrors"
	"karigar/db"
	"karigar/models"
	"karigar/utils"
)

// UpdateJobStatus walks the lifecycle state machine for cancel and complete.
// The write is conditioned on the status the decision was made against, so a
// concurrent transition surfaces as a conflict instead of a silent overwrite.
func UpdateJobStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Status models.JobStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	job, err := jobByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	workerID := ""
	if worker, err := workerByUserID(ctx, userID); err == nil {
		workerID = worker.WorkerID
	} else if err != apperrors.ErrWorkerProfileAbsent {
		log.Printf("Worker lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := CanUpdateStatus(job, userID, workerID, req.Status); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	update := bson.M{"status": req.Status}
	var completedAt time.Time
	if req.Status == models.JobCompleted {
		completedAt = time.Now()
		update["completedAt"] = completedAt
	}

	res, err := db.JobCollection.UpdateOne(ctx,
		bson.M{"jobid": id, "status": job.Status},
		bson.M{"$set": update})
	if err != nil {
		log.Printf("Status update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithAppError(w, apperrors.ErrJobUnavailable)
		return
	}

	job.Status = req.Status
	if req.Status == models.JobCompleted {
		job.CompletedAt = &completedAt
		if _, err := db.WorkerCollection.UpdateOne(ctx,
			bson.M{"workerid": job.AssignedWorker},
			bson.M{"$inc": bson.M{"completedJobs": 1}}); err != nil {
			log.Printf("Failed to bump completed count for worker %s: %v", job.AssignedWorker, err)
		}
	}

	if job.PostedBy == userID {
		utils.RespondWithJSON(w, http.StatusOK, job)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job.Sanitized())
}
