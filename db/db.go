package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	WorkerCollection       *mongo.Collection
	JobCollection          *mongo.Collection
	NotificationCollection *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("karigardb")
	UserCollection = database.Collection("users")
	WorkerCollection = database.Collection("workers")
	JobCollection = database.Collection("jobs")
	NotificationCollection = database.Collection("notifications")
}

// EnsureIndexes builds the geospatial and lookup indexes matching depends on:
// 2dsphere on worker home locations and job precise locations, unique ids,
// and the per-worker notification feed index.
func EnsureIndexes(ctx context.Context) error {
	_, err := WorkerCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "homeLocation", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "workerid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "skills", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = JobCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "preciseLocation", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "jobid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "postedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "assignedWorker", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = NotificationCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "notificationid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
