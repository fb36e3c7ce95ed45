package jobs

import (
	"context"
	"encoding/json"
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

// AddReview records the posting client's one-time rating of a completed job
// and refreshes the worker's running average. The guard conditions live in
// the update filter so a double submit cannot slip through.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Rating float64 `json:"rating"`
		Review string  `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondWithAppError(w, apperrors.Validation("rating", "must be between 1 and 5"))
		return
	}

	res := db.JobCollection.FindOneAndUpdate(ctx,
		bson.M{
			"jobid":    id,
			"postedBy": userID,
			"status":   models.JobCompleted,
			"rating":   bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"rating": req.Rating, "review": req.Review}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var job models.Job
	if err := res.Decode(&job); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("Review update error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		utils.RespondWithAppError(w, reviewRejection(ctx, id, userID))
		return
	}

	if err := recomputeWorkerRating(ctx, job.AssignedWorker); err != nil {
		log.Printf("Failed to recompute rating for worker %s: %v", job.AssignedWorker, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, job)
}

// reviewRejection explains why the conditional update matched nothing.
func reviewRejection(ctx context.Context, id, userID string) error {
	job, err := jobByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case job.PostedBy != userID:
		return apperrors.ErrForbidden
	case job.Status != models.JobCompleted:
		return apperrors.New(http.StatusBadRequest, "can only review completed jobs")
	default:
		return apperrors.New(http.StatusBadRequest, "job already reviewed")
	}
}

// recomputeWorkerRating takes the arithmetic mean over all of the worker's
// rated jobs.
func recomputeWorkerRating(ctx context.Context, workerID string) error {
	if workerID == "" {
		return nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"assignedWorker": workerID,
			"rating":         bson.M{"$exists": true},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := db.JobCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Rating float64 `bson:"rating"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}

	_, err = db.WorkerCollection.UpdateOne(ctx,
		bson.M{"workerid": workerID},
		bson.M{"$set": bson.M{"rating": out[0].Rating}})
	return err
}
