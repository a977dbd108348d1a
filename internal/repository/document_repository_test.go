package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
	"github.com/noah-isme/mi-attendance-api/internal/models"
)

type fakeObserver struct {
	mu      sync.Mutex
	queries []string
	skipped map[string]int
}

func (f *fakeObserver) ObserveDBQuery(label string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, label)
}

func (f *fakeObserver) RecordSkippedDocument(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipped == nil {
		f.skipped = map[string]int{}
	}
	f.skipped[collection]++
}

func newStudentRepo(mt *mtest.T, observer QueryObserver) *DocumentRepository[models.Student] {
	repo := NewDocumentRepository[models.Student](observer, nil)
	require.NoError(mt, repo.Init(mt.DB, mt.Coll.Name()))
	return repo
}

func TestDocumentRepositoryUninitialized(t *testing.T) {
	repo := NewDocumentRepository[models.Teacher](nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Initialized())
	assert.Equal(t, models.KindTeacher, repo.Kind())

	_, err := repo.FindOne(ctx, bson.M{"name": "x"})
	assert.ErrorIs(t, err, models.ErrNotInitialized)
	_, err = repo.FindMany(ctx, bson.M{})
	assert.ErrorIs(t, err, models.ErrNotInitialized)
	_, err = repo.Insert(ctx, models.Teacher{})
	assert.ErrorIs(t, err, models.ErrNotInitialized)
	_, err = repo.UpdateMany(ctx, bson.M{"name": "x"}, bson.M{"name": "y"})
	assert.ErrorIs(t, err, models.ErrNotInitialized)
	_, err = repo.DeleteOne(ctx, bson.M{"name": "x"})
	assert.ErrorIs(t, err, models.ErrNotInitialized)
}

func TestDocumentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("init only once", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		assert.True(mt, repo.Initialized())
		assert.ErrorIs(mt, repo.Init(mt.DB, "other"), ErrAlreadyInitialized)
	})

	mt.Run("find one decodes record", func(mt *mtest.T) {
		observer := &fakeObserver{}
		repo := newStudentRepo(mt, observer)
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Alice"},
			{Key: "card_id", Value: "C1"},
		}))

		student, err := repo.FindOne(context.Background(), bson.M{"_id": id})
		require.NoError(mt, err)
		assert.Equal(mt, id, *student.ID)
		assert.Equal(mt, "Alice", *student.Name)
		assert.Equal(mt, "C1", *student.CardID)
		assert.Nil(mt, student.ClassID)
		assert.Equal(mt, []string{"student.find_one"}, observer.queries)
	})

	mt.Run("find one without match", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindOne(context.Background(), bson.M{"_id": primitive.NewObjectID()})
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})

	mt.Run("find one driver failure", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		_, err := repo.FindOne(context.Background(), bson.M{"name": "Alice"})
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("find many skips undecodable documents", func(mt *mtest.T) {
		observer := &fakeObserver{}
		repo := newStudentRepo(mt, observer)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Alice"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: int32(7)}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Bob"}},
		))

		students, err := repo.FindMany(context.Background(), bson.M{})
		require.NoError(mt, err)
		require.Len(mt, students, 2)
		assert.Equal(mt, "Alice", *students[0].Name)
		assert.Equal(mt, "Bob", *students[1].Name)
		assert.Equal(mt, 1, observer.skipped[mt.Coll.Name()])
	})

	mt.Run("find many empty collection", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		students, err := repo.FindMany(context.Background(), bson.M{})
		require.NoError(mt, err)
		assert.NotNil(mt, students)
		assert.Empty(mt, students)
	})

	mt.Run("insert returns generated id", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ack, err := repo.Insert(context.Background(), models.Student{Name: filter.String("Alice"), CardID: filter.String("C1")})
		require.NoError(mt, err)
		assert.IsType(mt, primitive.ObjectID{}, ack.InsertedID)
	})

	mt.Run("insert rejects other kind", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)

		_, err := repo.Insert(context.Background(), models.Teacher{Name: filter.String("Budi")})
		assert.ErrorIs(mt, err, models.ErrKindMismatch)
	})

	mt.Run("update many reports counts", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 1},
		))

		ack, err := repo.UpdateMany(context.Background(), bson.M{"card_id": "C1"}, bson.M{"name": "Alicia"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), ack.MatchedCount)
		assert.Equal(mt, int64(1), ack.ModifiedCount)
		assert.Nil(mt, ack.UpsertedID)
	})

	mt.Run("delete one without match", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		ack, err := repo.DeleteOne(context.Background(), bson.M{"name": "Nobody"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), ack.DeletedCount)
	})

	mt.Run("delete one driver failure", func(mt *mtest.T) {
		repo := newStudentRepo(mt, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := repo.DeleteOne(context.Background(), bson.M{"name": "Alice"})
		require.Error(mt, err)
	})
}
