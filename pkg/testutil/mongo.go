// Package testutil holds helpers for integration tests that need a live
// MongoDB. Transactions require a replica set, e.g.
// `docker run -p 27017:27017 mongo:7 --replSet rs0` followed by rs.initiate().
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"campusconnect/pkg/client"
	"campusconnect/pkg/config"
	"campusconnect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI   = "mongodb://localhost:27017/?replicaSet=rs0"
	ConnectionTimeout = 10 * time.Second
	EnvTestMongoURI   = "TEST_MONGO_URI"
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

// NewMongoHelper connects to TEST_MONGO_URI (or the local default) and
// uses a database unique to the calling test.
func NewMongoHelper(t *testing.T) *MongoHelper {
	t.Helper()

	mongoURI := os.Getenv(EnvTestMongoURI)
	if mongoURI == "" {
		mongoURI = DefaultMongoURI
	}
	dbName := fmt.Sprintf("campusconnect_test_%d", time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	h := &MongoHelper{
		Client:   mc,
		Database: mc.Database(dbName),
		DBName:   dbName,
	}
	t.Cleanup(func() { h.close(t) })
	return h
}

// Config returns a service config wired to the helper's connection.
func (m *MongoHelper) Config(rooms []string) *config.Config {
	return &config.Config{
		ServiceName:       "integration-test",
		MongoDatabaseName: m.DBName,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		BookingLockTTL:    30 * time.Second,
		Rooms:             rooms,
		Log:               logger.Discard(),
		Client:            &client.Client{Mongo: &client.MongoClient{Client: m.Client}},
	}
}

func (m *MongoHelper) CountDocuments(t *testing.T, collectionName string, filter bson.M) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collectionName).CountDocuments(ctx, filter)
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collectionName, err)
	}
	return count
}

func (m *MongoHelper) close(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Database.Drop(ctx); err != nil {
		t.Logf("warning: failed to drop test database %s: %v", m.DBName, err)
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}
