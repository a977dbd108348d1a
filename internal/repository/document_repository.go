package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/mi-attendance-api/internal/models"
)

// ErrAlreadyInitialized is returned when a repository is bound to a second collection.
var ErrAlreadyInitialized = errors.New("collection is already initialized")

// QueryObserver receives timing and decode-skip signals from repositories.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
	RecordSkippedDocument(collection string)
}

// DocumentRepository manages persistence for one record kind in one MongoDB collection.
type DocumentRepository[T models.Entity] struct {
	kind       models.Kind
	collection atomic.Pointer[mongo.Collection]
	observer   QueryObserver
	logger     *zap.Logger
}

// NewDocumentRepository constructs an uninitialized repository; call Init before use.
func NewDocumentRepository[T models.Entity](observer QueryObserver, logger *zap.Logger) *DocumentRepository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	var zero T
	return &DocumentRepository[T]{kind: zero.Kind(), observer: observer, logger: logger}
}

// Init binds the repository to the named collection of db. It may succeed only once.
func (r *DocumentRepository[T]) Init(db *mongo.Database, name string) error {
	if db == nil {
		return fmt.Errorf("init %s repository: nil database", r.kind)
	}
	if !r.collection.CompareAndSwap(nil, db.Collection(name)) {
		return fmt.Errorf("init %s repository: %w", r.kind, ErrAlreadyInitialized)
	}
	return nil
}

// Initialized reports whether Init has succeeded.
func (r *DocumentRepository[T]) Initialized() bool {
	return r.collection.Load() != nil
}

// Kind returns the record kind stored by this repository.
func (r *DocumentRepository[T]) Kind() models.Kind {
	return r.kind
}

// FindOne returns the first document matching filter.
func (r *DocumentRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	coll, err := r.bound()
	if err != nil {
		return nil, err
	}
	defer r.observe("find_one", time.Now())

	var record T
	if err := coll.FindOne(ctx, filter).Decode(&record); err != nil {
		return nil, fmt.Errorf("find %s: %w", r.kind, err)
	}
	return &record, nil
}

// FindMany returns every decodable document matching filter.
func (r *DocumentRepository[T]) FindMany(ctx context.Context, filter bson.M) ([]T, error) {
	coll, err := r.bound()
	if err != nil {
		return nil, err
	}
	defer r.observe("find_many", time.Now())

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	for cursor.Next(ctx) {
		var record T
		if err := cursor.Decode(&record); err != nil {
			r.logger.Warn("skipping undecodable document",
				zap.String("collection", coll.Name()),
				zap.String("document_id", cursor.Current.Lookup("_id").String()),
				zap.Error(err),
			)
			if r.observer != nil {
				r.observer.RecordSkippedDocument(coll.Name())
			}
			continue
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.kind, err)
	}
	return records, nil
}

// Insert stores record, which must be of the repository's kind.
func (r *DocumentRepository[T]) Insert(ctx context.Context, record models.Entity) (*models.InsertAck, error) {
	coll, err := r.bound()
	if err != nil {
		return nil, err
	}
	if record == nil || record.Kind() != r.kind {
		return nil, fmt.Errorf("insert into %s: %w", r.kind, models.ErrKindMismatch)
	}
	defer r.observe("insert_one", time.Now())

	result, err := coll.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.kind, err)
	}
	return &models.InsertAck{InsertedID: result.InsertedID}, nil
}

// UpdateMany merges set into every document matching filter.
func (r *DocumentRepository[T]) UpdateMany(ctx context.Context, filter, set bson.M) (*models.UpdateAck, error) {
	coll, err := r.bound()
	if err != nil {
		return nil, err
	}
	defer r.observe("update_many", time.Now())

	result, err := coll.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.kind, err)
	}
	return &models.UpdateAck{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedID:    result.UpsertedID,
	}, nil
}

// DeleteOne removes a single document matching filter.
func (r *DocumentRepository[T]) DeleteOne(ctx context.Context, filter bson.M) (*models.DeleteAck, error) {
	coll, err := r.bound()
	if err != nil {
		return nil, err
	}
	defer r.observe("delete_one", time.Now())

	result, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", r.kind, err)
	}
	return &models.DeleteAck{DeletedCount: result.DeletedCount}, nil
}

func (r *DocumentRepository[T]) bound() (*mongo.Collection, error) {
	coll := r.collection.Load()
	if coll == nil {
		return nil, fmt.Errorf("%s repository: %w", r.kind, models.ErrNotInitialized)
	}
	return coll, nil
}

func (r *DocumentRepository[T]) observe(op string, start time.Time) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveDBQuery(string(r.kind)+"."+op, time.Since(start))
}
