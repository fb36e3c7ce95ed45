package workers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"karigar/db"
	"karigar/geo"
	"karigar/models"
	"karigar/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

type locationPing struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LiveLocation accepts a stream of GPS pings from a worker's device. Each
// valid ping overwrites homeLocation best-effort; invalid pings are dropped
// and a failed write never closes the stream.
func LiveLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	worker, err := workerByUserID(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	for {
		var ping locationPing
		if err := conn.ReadJSON(&ping); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Location stream for worker %s closed: %v", worker.WorkerID, err)
			}
			return
		}

		if !geo.ValidCoordinates(ping.Latitude, ping.Longitude) {
			continue
		}

		_, err := db.WorkerCollection.UpdateOne(ctx,
			bson.M{"workerid": worker.WorkerID},
			bson.M{"$set": bson.M{
				"homeLocation": models.NewGeoPoint(ping.Latitude, ping.Longitude),
				"updatedAt":    time.Now(),
			}})
		if err != nil {
			log.Printf("Ping write for worker %s failed: %v", worker.WorkerID, err)
		}
	}
}
