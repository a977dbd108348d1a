package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
	"github.com/noah-isme/mi-attendance-api/internal/models"
	"github.com/noah-isme/mi-attendance-api/internal/service"
	appErrors "github.com/noah-isme/mi-attendance-api/pkg/errors"
)

type studentServiceMock struct {
	listResp   []models.Student
	searchResp *models.Student
	insertAck  *models.InsertAck
	updateAck  *models.UpdateAck
	deleteAck  *models.DeleteAck
	exportResp *service.ExportFile
	err        error

	lastParams    filter.Params
	lastRawParams map[string]string
	lastRecord    models.Student
	lastFormat    string
}

func (m *studentServiceMock) Schema() filter.Schema { return models.StudentSchema }

func (m *studentServiceMock) List(ctx context.Context) ([]models.Student, error) {
	return m.listResp, m.err
}

func (m *studentServiceMock) Search(ctx context.Context, params filter.Params) (*models.Student, error) {
	m.lastParams = params
	return m.searchResp, m.err
}

func (m *studentServiceMock) Create(ctx context.Context, record models.Student) (*models.InsertAck, error) {
	m.lastRecord = record
	return m.insertAck, m.err
}

func (m *studentServiceMock) Update(ctx context.Context, params map[string]string, newData models.Student) (*models.UpdateAck, error) {
	m.lastRawParams = params
	m.lastRecord = newData
	return m.updateAck, m.err
}

func (m *studentServiceMock) Delete(ctx context.Context, record models.Student) (*models.DeleteAck, error) {
	m.lastRecord = record
	return m.deleteAck, m.err
}

func (m *studentServiceMock) Export(ctx context.Context, format string) (*service.ExportFile, error) {
	m.lastFormat = format
	return m.exportResp, m.err
}

func newStudentRouter(svc *studentServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRecordHandler[models.Student](svc).Register(r.Group("/student"))
	return r
}

func serve(r *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecordHandlerList(t *testing.T) {
	svc := &studentServiceMock{listResp: []models.Student{{Name: filter.String("Alice")}}}

	w := serve(newStudentRouter(svc), http.MethodGet, "/student", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Alice"}]`, w.Body.String())
}

func TestRecordHandlerListEmpty(t *testing.T) {
	svc := &studentServiceMock{listResp: []models.Student{}}

	w := serve(newStudentRouter(svc), http.MethodGet, "/student", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecordHandlerSearchReadsQuery(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &studentServiceMock{searchResp: &models.Student{ID: &id, Name: filter.String("Alice")}}

	w := serve(newStudentRouter(svc), http.MethodGet, "/student/search?_id="+id.Hex()+"&card_id=", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+id.Hex()+`","name":"Alice"}`, w.Body.String())
	require.Contains(t, svc.lastParams, "id")
	assert.Equal(t, id.Hex(), *svc.lastParams["id"])
	require.Contains(t, svc.lastParams, "card_id")
	assert.Equal(t, "", *svc.lastParams["card_id"])
	assert.NotContains(t, svc.lastParams, "name")
}

func TestRecordHandlerSearchErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   float64
	}{
		{"empty filter", appErrors.Clone(appErrors.ErrEmptyFilter, ""), http.StatusBadRequest, 1},
		{"not found", appErrors.Clone(appErrors.ErrNotFound, "student not found"), http.StatusNotFound, 0},
		{"kind mismatch", appErrors.Clone(appErrors.ErrKindMismatch, ""), http.StatusInternalServerError, 2},
		{"not initialized", appErrors.Clone(appErrors.ErrNotInitialized, ""), http.StatusServiceUnavailable, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(newStudentRouter(&studentServiceMock{err: tc.err}), http.MethodGet, "/student/search", nil)

			require.Equal(t, tc.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tc.code, body["error_code"])
			assert.NotEmpty(t, body["message"])
			assert.Contains(t, body, "error_line")
		})
	}
}

func TestRecordHandlerCreate(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &studentServiceMock{insertAck: &models.InsertAck{InsertedID: id}}

	w := serve(newStudentRouter(svc), http.MethodPost, "/student", map[string]string{"name": "Alice", "card_id": "C1"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"inserted_id":"`+id.Hex()+`"}`, w.Body.String())
	assert.Equal(t, "Alice", *svc.lastRecord.Name)
	assert.Nil(t, svc.lastRecord.ID)
}

func TestRecordHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newStudentRouter(&studentServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/student", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(1), decodeError(t, w)["error_code"])
}

func TestRecordHandlerUpdate(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &studentServiceMock{updateAck: &models.UpdateAck{MatchedCount: 1, ModifiedCount: 1}}

	w := serve(newStudentRouter(svc), http.MethodPut, "/student", map[string]interface{}{
		"params":   map[string]string{"_id": id.Hex()},
		"new_data": map[string]interface{}{"name": "Alicia", "card_id": "C1", "class_id": nil},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"matched_count":1,"modified_count":1,"upserted_id":null}`, w.Body.String())
	assert.Equal(t, map[string]string{"_id": id.Hex()}, svc.lastRawParams)
	assert.Equal(t, "Alicia", *svc.lastRecord.Name)
	assert.Nil(t, svc.lastRecord.ClassID)
}

func TestRecordHandlerDelete(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &studentServiceMock{deleteAck: &models.DeleteAck{DeletedCount: 0}}

	w := serve(newStudentRouter(svc), http.MethodDelete, "/student", map[string]string{"id": id.Hex(), "name": "Alice"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted_count":0}`, w.Body.String())
	require.NotNil(t, svc.lastRecord.ID)
	assert.Equal(t, id, *svc.lastRecord.ID)
}

func TestRecordHandlerExport(t *testing.T) {
	svc := &studentServiceMock{exportResp: &service.ExportFile{
		Filename:    "students.csv",
		ContentType: "text/csv; charset=utf-8",
		Payload:     []byte("id,name\n"),
	}}

	w := serve(newStudentRouter(svc), http.MethodGet, "/student/export?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, `attachment; filename="students.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "id,name\n", w.Body.String())
}
