package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordService is the slice of services.RecordService the handlers use.
type RecordService[T any] interface {
	Create(ctx context.Context, rec *T) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Replace(ctx context.Context, id primitive.ObjectID, rec *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, limit int) ([]*T, error)
}

// bindJSON decodes the body into dst, mapping decode failures onto the
// error taxonomy.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return fmt.Errorf("%w: body exceeds %d bytes", helpers.ErrPayloadTooLarge, tooBig.Limit)
		}
		return fmt.Errorf("%w: %v", helpers.ErrInvalidInput, err)
	}
	return nil
}

func pathID(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := helpers.ParseObjectID(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}

func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid limit parameter %q", helpers.ErrInvalidInput, raw)
	}
	return limit, nil
}

// CreateRecord answers 201 with {"message": "<noun> created", "id": ...}.
func CreateRecord[T any](s RecordService[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec T
		if err := bindJSON(c, &rec); err != nil {
			_ = c.Error(err)
			return
		}

		id, err := s.Create(c.Request.Context(), &rec)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, models.CreatedResponse{
			Message: noun + " created",
			ID:      id.Hex(),
		})
	}
}

func ListRecords[T any](s RecordService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryLimit(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		recs, err := s.List(c.Request.Context(), limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(recs, len(recs)))
	}
}

func GetRecord[T any](s RecordService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		rec, err := s.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rec, ""))
	}
}

// ReplaceRecord overwrites every field of the stored record with the body.
func ReplaceRecord[T any](s RecordService[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		var rec T
		if err := bindJSON(c, &rec); err != nil {
			_ = c.Error(err)
			return
		}

		if err := s.Replace(c.Request.Context(), id, &rec); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(&rec, noun+" updated"))
	}
}

func DeleteRecord[T any](s RecordService[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		if err := s.Delete(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, noun+" deleted"))
	}
}

// RegisterRecordRoutes mounts the five CRUD routes of one collection on rg.
func RegisterRecordRoutes[T any](rg *gin.RouterGroup, s RecordService[T], noun string) {
	rg.POST("", CreateRecord(s, noun))
	rg.GET("", ListRecords(s))
	rg.GET("/:id", GetRecord(s))
	rg.PUT("/:id", ReplaceRecord(s, noun))
	rg.DELETE("/:id", DeleteRecord(s, noun))
}
