package models

import (
	"time"
)

const DefaultServiceRadiusKm = 10

type Worker struct {
	WorkerID string `bson:"workerid" json:"workerid"`
	UserID   string `bson:"userid" json:"userid"`
	Name     string `bson:"name" json:"name"`

	// HomeLocation is the base location used for matching. Live GPS pings
	// overwrite it best-effort; a zero or invalid point keeps the worker out
	// of all matching queries.
	HomeLocation    GeoPoint `bson:"homeLocation,omitempty" json:"homeLocation,omitzero"`
	ServiceRadiusKm float64  `bson:"serviceRadiusKm" json:"serviceRadiusKm"`
	Skills          []string `bson:"skills" json:"skills"`

	// PushToken is the worker's registered push endpoint, empty when the
	// worker never registered one.
	PushToken string `bson:"pushToken,omitempty" json:"-"`

	Rating        float64 `bson:"rating" json:"rating"`
	CompletedJobs int     `bson:"completedJobs" json:"completedJobs"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
