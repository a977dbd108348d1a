package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mi-attendance-api/internal/dto"
	"github.com/noah-isme/mi-attendance-api/internal/filter"
	"github.com/noah-isme/mi-attendance-api/internal/models"
	"github.com/noah-isme/mi-attendance-api/internal/service"
	appErrors "github.com/noah-isme/mi-attendance-api/pkg/errors"
	"github.com/noah-isme/mi-attendance-api/pkg/response"
)

type recordService[T models.Entity] interface {
	Schema() filter.Schema
	List(ctx context.Context) ([]T, error)
	Search(ctx context.Context, params filter.Params) (*T, error)
	Create(ctx context.Context, record T) (*models.InsertAck, error)
	Update(ctx context.Context, params map[string]string, newData T) (*models.UpdateAck, error)
	Delete(ctx context.Context, record T) (*models.DeleteAck, error)
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// RecordHandler exposes the CRUD endpoints of one record kind.
type RecordHandler[T models.Entity] struct {
	records recordService[T]
}

// NewRecordHandler constructs RecordHandler.
func NewRecordHandler[T models.Entity](records recordService[T]) *RecordHandler[T] {
	return &RecordHandler[T]{records: records}
}

// Register mounts the handler on group, which is expected to be /student or /teacher.
func (h *RecordHandler[T]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/search", h.Search)
	group.GET("/export", h.Export)
	group.POST("", h.Create)
	group.PUT("", h.Update)
	group.DELETE("", h.Delete)
}

// List godoc
// @Summary List records
// @Tags Records
// @Produce json
// @Param kind path string true "student or teacher"
// @Success 200 {array} object
// @Failure 500 {object} errors.Error
// @Router /{kind} [get]
func (h *RecordHandler[T]) List(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Search godoc
// @Summary Find the first record matching the query
// @Tags Records
// @Produce json
// @Param kind path string true "student or teacher"
// @Param id query string false "Record ID (also accepted as _id)"
// @Param name query string false "Name"
// @Success 200 {object} object
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /{kind}/search [get]
func (h *RecordHandler[T]) Search(c *gin.Context) {
	record, err := h.records.Search(c.Request.Context(), queryParams(c, h.records.Schema()))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Create godoc
// @Summary Insert a record
// @Tags Records
// @Accept json
// @Produce json
// @Param kind path string true "student or teacher"
// @Success 201 {object} models.InsertAck
// @Failure 400 {object} errors.Error
// @Router /{kind} [post]
func (h *RecordHandler[T]) Create(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid payload"))
		return
	}
	ack, err := h.records.Create(c.Request.Context(), record)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ack)
}

// Update godoc
// @Summary Set fields on every matching record
// @Tags Records
// @Accept json
// @Produce json
// @Param kind path string true "student or teacher"
// @Success 200 {object} models.UpdateAck
// @Failure 400 {object} errors.Error
// @Router /{kind} [put]
func (h *RecordHandler[T]) Update(c *gin.Context) {
	var req dto.UpdateRecordRequest[T]
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid payload"))
		return
	}
	ack, err := h.records.Update(c.Request.Context(), req.Params, req.NewData)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack)
}

// Delete godoc
// @Summary Delete one record matching the body
// @Tags Records
// @Accept json
// @Produce json
// @Param kind path string true "student or teacher"
// @Success 200 {object} models.DeleteAck
// @Failure 400 {object} errors.Error
// @Router /{kind} [delete]
func (h *RecordHandler[T]) Delete(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid payload"))
		return
	}
	ack, err := h.records.Delete(c.Request.Context(), record)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack)
}

// Export godoc
// @Summary Download every record as a file
// @Tags Records
// @Produce octet-stream
// @Param kind path string true "student or teacher"
// @Param format query string false "csv (default), xlsx or pdf"
// @Success 200 {file} file
// @Failure 400 {object} errors.Error
// @Router /{kind}/export [get]
func (h *RecordHandler[T]) Export(c *gin.Context) {
	file, err := h.records.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Payload)
}

// queryParams collects schema fields from the query string. A field may be
// addressed by its logical name or its document key; a key present with an
// empty value still counts as present.
func queryParams(c *gin.Context, schema filter.Schema) filter.Params {
	params := filter.Params{}
	for _, field := range schema.Fields {
		if value, ok := c.GetQuery(field.Param); ok {
			params[field.Param] = filter.String(value)
			continue
		}
		if value, ok := c.GetQuery(field.Key); ok {
			params[field.Param] = filter.String(value)
		}
	}
	return params
}
