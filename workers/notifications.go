package workers

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"karigar/apperrors"
	"karigar/db"
	"karigar/models"
	"karigar/utils"
)

// GetNotifications lists the requesting worker's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cursor, err := db.NotificationCollection.Find(ctx,
		bson.M{"workerId": worker.WorkerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Notification
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("Cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Notification{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// ackQuery builds the filter and update for a notification ack. The filter
// leaves isRead unconstrained and the update is a plain $set, so a repeat ack
// matches again and leaves the document as it was.
func ackQuery(notificationID, workerID string) (filter, update bson.M) {
	filter = bson.M{"notificationid": notificationID, "workerId": workerID}
	update = bson.M{"$set": bson.M{"isRead": true}}
	return filter, update
}

// MarkNotificationRead flips isRead to true. The flip is one-way and
// idempotent; acking an already-read notification succeeds again.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	filter, update := ackQuery(ps.ByName("id"), worker.WorkerID)
	res, err := db.NotificationCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Printf("Ack error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithAppError(w, apperrors.ErrNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "isRead": true})
}
