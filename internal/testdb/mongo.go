package testdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// OpenMongo connects to the configured MongoDB test server and returns a
// database with a random name. The database is dropped when the test ends.
// The test is skipped if no URI is configured.
func OpenMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := MongoURI()
	if uri == "" {
		t.Skipf("%s not set, skipping MongoDB integration test", EnvMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to create mongo client: %s", formatConnectionError(err, uri))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("mongo connection failed: %s", formatConnectionError(err, uri))
	}

	db := client.Database("taskmate_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}
