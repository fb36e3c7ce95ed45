package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"karigar/apperrors"
	"karigar/db"
	"karigar/geo"
	"karigar/matching"
	"karigar/models"
	"karigar/utils"
	"karigar/visibility"
)

func workerByUserID(ctx context.Context, userID string) (*models.Worker, error) {
	var worker models.Worker
	if err := db.WorkerCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrWorkerProfileAbsent
		}
		return nil, err
	}
	return &worker, nil
}

// UpdateLocation replaces the worker's home location, the field every
// matching query keys on.
func UpdateLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !geo.ValidCoordinates(req.Latitude, req.Longitude) {
		utils.RespondWithAppError(w, apperrors.ErrInvalidCoordinates)
		return
	}

	res := db.WorkerCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": utils.GetUserIDFromRequest(r)},
		bson.M{"$set": bson.M{
			"homeLocation": models.NewGeoPoint(req.Latitude, req.Longitude),
			"updatedAt":    time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var worker models.Worker
	if err := res.Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithAppError(w, apperrors.ErrWorkerProfileAbsent)
		} else {
			log.Printf("Location update error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, worker)
}

// UpdateProfile adjusts the worker's skills, service radius, and push token.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req struct {
		Skills          []string `json:"skills"`
		ServiceRadiusKm *float64 `json:"serviceRadiusKm"`
		PushToken       *string  `json:"pushToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Skills != nil {
		update["skills"] = utils.NormalizeSkills(req.Skills)
	}
	if req.ServiceRadiusKm != nil {
		if *req.ServiceRadiusKm <= 0 || *req.ServiceRadiusKm > matching.MaxServiceRadiusKm {
			utils.RespondWithAppError(w, apperrors.Validation("serviceRadiusKm",
				fmt.Sprintf("must be a positive number of at most %.0f km", matching.MaxServiceRadiusKm)))
			return
		}
		update["serviceRadiusKm"] = *req.ServiceRadiusKm
	}
	if req.PushToken != nil {
		update["pushToken"] = *req.PushToken
	}

	res := db.WorkerCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": utils.GetUserIDFromRequest(r)},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var worker models.Worker
	if err := res.Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithAppError(w, apperrors.ErrWorkerProfileAbsent)
		} else {
			log.Printf("Profile update error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, worker)
}

// NearbyJobs returns the redacted feed of pending jobs the requesting worker
// is eligible for.
func NearbyJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	jobs, err := matching.FindEligibleJobs(ctx, worker)
	if err != nil {
		log.Printf("Nearby query error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, jobs)
}

// JobLocation runs the disclosure policy for the requesting worker against a
// job. The precise coordinates appear only inside the reveal window.
func JobLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	var job models.Job
	if err := db.JobCollection.FindOne(ctx, bson.M{"jobid": ps.ByName("id")}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithAppError(w, apperrors.ErrNotFound)
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	result, err := visibility.ForWorker(&job, worker.WorkerID, time.Now())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
