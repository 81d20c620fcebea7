package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the stored shape of a task.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// MongoTaskStore implements store.TaskStore on a MongoDB collection.
type MongoTaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoTaskStore creates a task store backed by the taskRecords
// collection of db. If logger is nil, a default logger will be used.
func NewMongoTaskStore(db *mongo.Database, logger *slog.Logger) *MongoTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoTaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*MongoTaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	doc := taskDocument{
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		CreatedAt:   task.CreatedAt,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			redact.EmailAttr("owner", task.UserID))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return store.NewStoreError("task", "create", "unexpected id type", nil)
	}
	task.ID = oid.Hex()
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner.
func (s *MongoTaskStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": ownerEmail}, opts)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			redact.EmailAttr("owner", ownerEmail))
		return nil, store.NewStoreError("task", "list", "find failed", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	tasks := make([]*domain.Task, 0)
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, store.NewStoreError("task", "list", "decode failed", err)
		}
		tasks = append(tasks, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "cursor failed", err)
	}

	return tasks, nil
}

// UpdateOwned implements store.TaskStore.UpdateOwned.
func (s *MongoTaskStore) UpdateOwned(
	ctx context.Context,
	id, ownerEmail string,
	patch domain.TaskPatch,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": oid, "userId": ownerEmail}

	// MongoDB rejects an empty $set, so an empty patch is an ownership probe.
	if patch.IsEmpty() {
		n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return store.NewStoreError("task", "update", "ownership check failed", MapError(err))
		}
		if n == 0 {
			return store.ErrTaskNotFound
		}
		return nil
	}

	set := bson.M{}
	for k, v := range patch.Fields() {
		set[k] = v
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}
	if res.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// DeleteOwned implements store.TaskStore.DeleteOwned.
func (s *MongoTaskStore) DeleteOwned(ctx context.Context, id, ownerEmail string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": ownerEmail})
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
