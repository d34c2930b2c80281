package retention

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

const (
	// DefaultMongoDatabase and DefaultMongoCollection locate the ledger
	// document when not configured.
	DefaultMongoDatabase   = "isograph"
	DefaultMongoCollection = "retention"

	ledgerDocID = "ledger"

	// maxCASAttempts bounds optimistic retries under contention.
	maxCASAttempts = 20
)

// ErrConflict is returned when an update keeps losing the version race.
var ErrConflict = errors.New("ledger modified concurrently")

type mongoLedger struct {
	ID      string   `bson:"_id"`
	IDs     []string `bson:"ids"`
	Version int64    `bson:"version"`
}

// MongoStore keeps the ledger in a single versioned document. Updates use
// optimistic compare-and-swap on the version field, so no lock is ever held
// on the server.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "ping mongodb")
	}
	db, coll := cfg.Database, cfg.Collection
	if db == "" {
		db = DefaultMongoDatabase
	}
	if coll == "" {
		coll = DefaultMongoCollection
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll), owned: true}, nil
}

// NewMongoStoreFromCollection wraps an existing collection. The client is
// not disconnected by Close.
func NewMongoStoreFromCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: coll.Database().Client(), coll: coll}
}

func (s *MongoStore) Update(ctx context.Context, fn func(*Ledger) error) error {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		doc, found, err := s.find(ctx)
		if err != nil {
			return err
		}

		l := &Ledger{IDs: doc.IDs}
		l.normalize()
		if err := fn(l); err != nil {
			return err
		}

		ok, err := s.swap(ctx, doc, found, l.IDs)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return apperrors.Wrap(apperrors.ErrCodeLedger, ctx.Err(), "update ledger")
		case <-time.After(time.Duration(attempt+1) * 10 * time.Millisecond):
		}
	}
	return apperrors.Wrap(apperrors.ErrCodeLedger, ErrConflict, "update ledger")
}

func (s *MongoStore) Load(ctx context.Context) (*Ledger, error) {
	doc, _, err := s.find(ctx)
	if err != nil {
		return nil, err
	}
	l := &Ledger{IDs: doc.IDs}
	l.normalize()
	return l, nil
}

func (s *MongoStore) Reset(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": ledgerDocID}); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "delete ledger")
	}
	return nil
}

func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context) (mongoLedger, bool, error) {
	var doc mongoLedger
	err := s.coll.FindOne(ctx, bson.M{"_id": ledgerDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return mongoLedger{ID: ledgerDocID}, false, nil
	}
	if err != nil {
		return mongoLedger{}, false, apperrors.Wrap(apperrors.ErrCodeLedger, err, "read ledger")
	}
	return doc, true, nil
}

// swap writes ids if the document is still at doc.Version. It reports false
// when another writer got there first.
func (s *MongoStore) swap(ctx context.Context, doc mongoLedger, found bool, ids []string) (bool, error) {
	if !found {
		_, err := s.coll.InsertOne(ctx, mongoLedger{ID: ledgerDocID, IDs: ids, Version: 1})
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		if err != nil {
			return false, apperrors.Wrap(apperrors.ErrCodeLedger, err, "create ledger")
		}
		return true, nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": ledgerDocID, "version": doc.Version},
		bson.M{"$set": bson.M{"ids": ids, "version": doc.Version + 1}},
	)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeLedger, err, "write ledger")
	}
	return res.MatchedCount == 1, nil
}

var _ Store = (*MongoStore)(nil)
