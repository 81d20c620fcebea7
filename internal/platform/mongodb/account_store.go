package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAccountStore implements store.AccountStore on a MongoDB collection.
// Profile fields are stored as top-level document fields next to email.
type MongoAccountStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoAccountStore creates an account store backed by the accounts
// collection of db. If logger is nil, a default logger will be used.
func NewMongoAccountStore(db *mongo.Database, logger *slog.Logger) *MongoAccountStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoAccountStore{
		coll:   db.Collection(AccountsCollection),
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*MongoAccountStore)(nil)

// CreateIfAbsent implements store.AccountStore.CreateIfAbsent.
func (s *MongoAccountStore) CreateIfAbsent(
	ctx context.Context,
	account *domain.Account,
) (bool, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if account.Email == "" {
		return false, "", domain.ErrEmptyEmail
	}

	err := s.coll.FindOne(ctx, bson.M{"email": account.Email}).Err()
	switch {
	case err == nil:
		log.Debug("account already exists", redact.EmailAttr("email", account.Email))
		return false, "", nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		log.Error("failed to look up account",
			slog.String("error", err.Error()),
			redact.EmailAttr("email", account.Email))
		return false, "", store.NewStoreError("account", "create", "lookup failed", MapError(err))
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	doc := bson.M{}
	for k, v := range account.Profile {
		doc[k] = v
	}
	doc["email"] = account.Email
	doc["createdAt"] = account.CreatedAt

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		// The unique index turns a concurrent registration into a duplicate key error.
		if mongo.IsDuplicateKeyError(err) {
			log.Debug("account created concurrently", redact.EmailAttr("email", account.Email))
			return false, "", nil
		}
		log.Error("failed to insert account",
			slog.String("error", err.Error()),
			redact.EmailAttr("email", account.Email))
		return false, "", store.NewStoreError("account", "create", "insert failed", MapError(err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return false, "", store.NewStoreError("account", "create", "unexpected id type", nil)
	}

	account.ID = oid.Hex()
	log.Info("account created",
		slog.String("account_id", account.ID),
		redact.EmailAttr("email", account.Email))
	return true, account.ID, nil
}

// ListAll implements store.AccountStore.ListAll.
func (s *MongoAccountStore) ListAll(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		log.Error("failed to query accounts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "list", "find failed", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	accounts := make([]*domain.Account, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, store.NewStoreError("account", "list", "decode failed", err)
		}
		accounts = append(accounts, accountFromDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, store.NewStoreError("account", "list", "cursor failed", err)
	}

	return accounts, nil
}

// accountFromDocument splits a raw document into the server-owned account
// fields and the opaque profile.
func accountFromDocument(raw bson.M) *domain.Account {
	account := &domain.Account{Profile: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "_id":
			if oid, ok := v.(primitive.ObjectID); ok {
				account.ID = oid.Hex()
			} else {
				account.ID, _ = normalizeValue(v).(string)
			}
		case "email":
			account.Email, _ = v.(string)
		case "createdAt":
			if dt, ok := v.(primitive.DateTime); ok {
				account.CreatedAt = dt.Time().UTC()
			}
		default:
			account.Profile[k] = normalizeValue(v)
		}
	}
	return account
}

// normalizeValue converts BSON-specific types into plain Go values that
// encode naturally as JSON.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = normalizeValue(e)
		}
		return m
	case primitive.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
