package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
	"github.com/noah-isme/mi-attendance-api/internal/models"
	"github.com/noah-isme/mi-attendance-api/pkg/export"
	appErrors "github.com/noah-isme/mi-attendance-api/pkg/errors"
)

type recordRepository[T models.Entity] interface {
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	FindMany(ctx context.Context, filter bson.M) ([]T, error)
	Insert(ctx context.Context, record models.Entity) (*models.InsertAck, error)
	UpdateMany(ctx context.Context, filter, set bson.M) (*models.UpdateAck, error)
	DeleteOne(ctx context.Context, filter bson.M) (*models.DeleteAck, error)
}

type recordCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Invalidate(ctx context.Context, pattern string)
}

// RecordOptions tunes RecordService behaviour.
type RecordOptions struct {
	// CoerceUpdateParams maps update filter keys onto schema fields and parses identifiers.
	CoerceUpdateParams bool
	CacheTTL           time.Duration
}

// ExportFile is a rendered roster ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// RecordService implements the record use-cases for one kind.
type RecordService[T models.Entity] struct {
	repo      recordRepository[T]
	cache     recordCache
	renderers map[export.Format]export.Renderer
	schema    filter.Schema
	kind      models.Kind
	opts      RecordOptions
	logger    *zap.Logger

	// generation advances on every write so a List that raced a write does not
	// repopulate the cache with what it read before the write.
	generation atomic.Uint64
}

// NewRecordService constructs the service. cache may be nil.
func NewRecordService[T models.Entity](repo recordRepository[T], cache recordCache, opts RecordOptions, logger *zap.Logger) *RecordService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	var zero T
	return &RecordService[T]{
		repo:      repo,
		cache:     cache,
		renderers: export.Renderers(),
		schema:    zero.Schema(),
		kind:      zero.Kind(),
		opts:      opts,
		logger:    logger.With(zap.String("kind", string(zero.Kind()))),
	}
}

// Schema returns the filter schema of the record kind.
func (s *RecordService[T]) Schema() filter.Schema {
	return s.schema
}

func (s *RecordService[T]) listKey() string {
	return string(s.kind) + ":all"
}

// List returns every record of the kind.
func (s *RecordService[T]) List(ctx context.Context) ([]T, error) {
	if s.cache != nil {
		var cached []T
		if s.cache.Get(ctx, s.listKey(), &cached) {
			return cached, nil
		}
	}

	generation := s.generation.Load()
	records, err := s.repo.FindMany(ctx, bson.M{})
	if err != nil {
		return nil, s.mapError(err, "list")
	}
	if s.cache != nil && s.generation.Load() == generation {
		s.cache.Set(ctx, s.listKey(), records, s.opts.CacheTTL)
	}
	return records, nil
}

// Search returns the first record matching params. An empty filter is
// rejected before the database is queried.
func (s *RecordService[T]) Search(ctx context.Context, params filter.Params) (*T, error) {
	doc := s.schema.Build(params)
	if malformed := s.schema.Malformed(params); len(malformed) > 0 {
		s.logger.Debug("dropping malformed identifiers from search", zap.Strings("params", malformed))
	}
	if len(doc) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyFilter, "")
	}

	record, err := s.repo.FindOne(ctx, doc)
	if err != nil {
		return nil, s.mapError(err, "find")
	}
	return record, nil
}

// Create inserts record.
func (s *RecordService[T]) Create(ctx context.Context, record T) (*models.InsertAck, error) {
	ack, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, s.mapError(err, "create")
	}
	s.invalidate(ctx)
	return ack, nil
}

// Update applies the present fields of newData to every record matching params.
func (s *RecordService[T]) Update(ctx context.Context, params map[string]string, newData T) (*models.UpdateAck, error) {
	doc, err := s.schema.BuildRaw(params, s.opts.CoerceUpdateParams)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, fmt.Sprintf("invalid update params: %v", err))
	}
	if len(doc) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyFilter, "")
	}
	set := s.schema.BuildUpdate(newData.Params())
	if len(set) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "new_data carries no fields to set")
	}

	ack, err := s.repo.UpdateMany(ctx, doc, set)
	if err != nil {
		return nil, s.mapError(err, "update")
	}
	s.invalidate(ctx)
	return ack, nil
}

// Delete removes one record matching the identifying fields of record.
func (s *RecordService[T]) Delete(ctx context.Context, record T) (*models.DeleteAck, error) {
	doc := s.schema.Build(record.Params())
	if len(doc) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyFilter, "")
	}

	ack, err := s.repo.DeleteOne(ctx, doc)
	if err != nil {
		return nil, s.mapError(err, "delete")
	}
	if ack.DeletedCount > 0 {
		s.invalidate(ctx)
	}
	return ack, nil
}

// Export renders every record of the kind in the requested format.
func (s *RecordService[T]) Export(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, err.Error())
	}

	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var zero T
	dataset := export.Dataset{
		Title:   fmt.Sprintf("%s roster", s.kind),
		Headers: zero.Columns(),
		Rows:    make([]map[string]string, 0, len(records)),
	}
	for _, record := range records {
		dataset.Rows = append(dataset.Rows, record.Row())
	}

	payload, err := s.renderers[format].Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to render export")
	}
	return &ExportFile{
		Filename:    format.Filename(string(s.kind) + "s"),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *RecordService[T]) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Invalidate(ctx, string(s.kind)+":*")
	}
}

func (s *RecordService[T]) mapError(err error, action string) error {
	switch {
	case errors.Is(err, models.ErrNotInitialized):
		return appErrors.Wrap(err, appErrors.ErrNotInitialized, "")
	case errors.Is(err, models.ErrKindMismatch):
		return appErrors.Wrap(err, appErrors.ErrKindMismatch, fmt.Sprintf("unexpected record type for %s collection", s.kind))
	case errors.Is(err, mongo.ErrNoDocuments):
		return appErrors.Wrap(err, appErrors.ErrNotFound, fmt.Sprintf("%s not found", s.kind))
	}
	s.logger.Error("record operation failed", zap.String("action", action), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal, fmt.Sprintf("failed to %s %s: %v", action, s.kind, err))
}
