package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
)

// Kind names a record type and doubles as its route segment.
type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
)

var (
	// ErrNotInitialized is returned by a repository used before its collection is bound.
	ErrNotInitialized = errors.New("collection is not initialized yet")
	// ErrKindMismatch is returned when a record is handed to a collection of another kind.
	ErrKindMismatch = errors.New("record kind does not match collection kind")
)

// Entity is implemented by every record type stored by the service.
type Entity interface {
	Kind() Kind
	// Schema describes how the record's fields map onto filter documents.
	Schema() filter.Schema
	// Params returns the record's fields keyed by logical name; unset fields are nil.
	Params() filter.Params
	// Columns and Row describe the record for tabular exports.
	Columns() []string
	Row() map[string]string
}

// InsertAck acknowledges an insert.
type InsertAck struct {
	InsertedID interface{} `json:"inserted_id"`
}

// UpdateAck acknowledges an update-many.
type UpdateAck struct {
	MatchedCount  int64       `json:"matched_count"`
	ModifiedCount int64       `json:"modified_count"`
	UpsertedID    interface{} `json:"upserted_id"`
}

// DeleteAck acknowledges a delete-one.
type DeleteAck struct {
	DeletedCount int64 `json:"deleted_count"`
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	return filter.String(id.Hex())
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
