package jobs

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
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
	"karigar/notify"
	"karigar/utils"
)

type createJobRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Budget        float64 `json:"budget"`
	ScheduledDate string  `json:"scheduledDate"` // 2006-01-02
	TimeStart     string  `json:"timeStart"`     // 15:04
	TimeEnd       string  `json:"timeEnd"`
}

func (req *createJobRequest) validate() (time.Time, error) {
	required := map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"address":     req.Address,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return time.Time{}, apperrors.Validation(field, "required")
		}
	}
	if req.Budget <= 0 {
		return time.Time{}, apperrors.Validation("budget", "must be a positive number")
	}
	if !geo.ValidCoordinates(req.Latitude, req.Longitude) {
		return time.Time{}, apperrors.ErrInvalidCoordinates
	}
	day, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return time.Time{}, apperrors.Validation("scheduledDate", "expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.TimeStart); err != nil {
		return time.Time{}, apperrors.Validation("timeStart", "expected HH:MM")
	}
	if _, err := time.Parse("15:04", req.TimeEnd); err != nil {
		return time.Time{}, apperrors.Validation("timeEnd", "expected HH:MM")
	}
	return day, nil
}

// CreateJob persists a pending job and fans notifications out to eligible
// workers in the background. Dispatch failures never fail the request.
func CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	day, err := req.validate()
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	job := models.Job{
		JobID:               "j" + utils.GenerateRandomString(12),
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		Category:            matching.NormalizeCategory(req.Category),
		Address:             strings.TrimSpace(req.Address),
		PreciseLocation:     models.NewGeoPoint(req.Latitude, req.Longitude),
		ApproximateLocation: geo.ApproximateLocality(req.Address),
		Budget:              req.Budget,
		ScheduledDate:       day,
		TimeStart:           req.TimeStart,
		TimeEnd:             req.TimeEnd,
		Status:              models.JobPending,
		PostedBy:            utils.GetUserIDFromRequest(r),
		CreatedAt:           time.Now(),
	}

	if _, err := db.JobCollection.InsertOne(ctx, job); err != nil {
		log.Printf("Insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	go notify.DispatchNewJob(&job)

	utils.RespondWithJSON(w, http.StatusCreated, job)
}

// GetJob returns a job. The full record, precise location included, is shown
// only to the posting client; the assigned worker gets the location through
// the disclosure endpoint instead.
func GetJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	job, err := jobByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if job.PostedBy == utils.GetUserIDFromRequest(r) {
		utils.RespondWithJSON(w, http.StatusOK, job)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job.Sanitized())
}

// GetMyPosts lists the requesting client's jobs, newest first.
func GetMyPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.JobCollection.Find(ctx, bson.M{"postedBy": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondJobs(ctx, w, cursor, false)
}

// GetMyAssignments lists jobs assigned to the requesting worker, newest first.
func GetMyAssignments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cursor, err := db.JobCollection.Find(ctx, bson.M{"assignedWorker": worker.WorkerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondJobs(ctx, w, cursor, true)
}

func findAndRespondJobs(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor, sanitize bool) {
	defer cursor.Close(ctx)
	var results []models.Job
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("Cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	if sanitize {
		for i := range results {
			results[i] = results[i].Sanitized()
		}
	}
	if len(results) == 0 {
		results = []models.Job{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

func jobByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := db.JobCollection.FindOne(ctx, bson.M{"jobid": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

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
