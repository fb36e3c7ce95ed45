package jobs

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"karigar/apperrors"
	"karigar/db"
	"karigar/models"
	"karigar/utils"
)

// AcceptJob assigns the requesting worker to a pending job. The transition is
// a single conditional update keyed on (jobid, pending, unassigned), so of
// any number of concurrent accepts exactly one wins; the rest see
// JobUnavailable.
func AcceptJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	res := db.JobCollection.FindOneAndUpdate(ctx,
		bson.M{"jobid": id, "status": models.JobPending, "assignedWorker": ""},
		bson.M{"$set": bson.M{
			"status":         models.JobInProgress,
			"assignedWorker": worker.WorkerID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var job models.Job
	if err := res.Decode(&job); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("Accept update error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		// Lost the race, or no such job at all.
		count, countErr := db.JobCollection.CountDocuments(ctx, bson.M{"jobid": id})
		if countErr != nil {
			log.Printf("Accept lookup error: %v", countErr)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count == 0 {
			utils.RespondWithAppError(w, apperrors.ErrNotFound)
		} else {
			utils.RespondWithAppError(w, apperrors.ErrJobUnavailable)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, job.Sanitized())
}
