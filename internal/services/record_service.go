package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordService validates and sanitizes records before handing them to a
// single-collection repo. It never looks at other collections, so ids that
// reference other records are stored as given.
type RecordService[T any, P models.Document[T]] struct {
	name string
	repo models.RecordRepo[T]
}

func NewRecordService[T any, P models.Document[T]](name string, repo models.RecordRepo[T]) *RecordService[T, P] {
	return &RecordService[T, P]{
		name: name,
		repo: repo,
	}
}

func (rs *RecordService[T, P]) check(rec *T) error {
	if rec == nil {
		return fmt.Errorf("%w: %s is nil", helpers.ErrInvalidInput, rs.name)
	}
	if err := models.Validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: invalid %s data provided: %v", helpers.ErrInvalidInput, rs.name, err)
	}
	if err := P(rec).Sanitize(); err != nil {
		return err
	}
	return nil
}

func (rs *RecordService[T, P]) Create(ctx context.Context, rec *T) (primitive.ObjectID, error) {
	if err := rs.check(rec); err != nil {
		return primitive.NilObjectID, err
	}
	return rs.repo.Create(ctx, rec)
}

func (rs *RecordService[T, P]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: empty %s id", helpers.ErrMalformedIdentifier, rs.name)
	}
	return rs.repo.Get(ctx, id)
}

// Replace swaps every field of the stored record; there is no partial patch
// and no version check, so concurrent replaces are last-write-wins.
func (rs *RecordService[T, P]) Replace(ctx context.Context, id primitive.ObjectID, rec *T) error {
	if id.IsZero() {
		return fmt.Errorf("%w: empty %s id", helpers.ErrMalformedIdentifier, rs.name)
	}
	if err := rs.check(rec); err != nil {
		return err
	}
	return rs.repo.Replace(ctx, id, rec)
}

func (rs *RecordService[T, P]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: empty %s id", helpers.ErrMalformedIdentifier, rs.name)
	}
	return rs.repo.Delete(ctx, id)
}

// List returns up to limit records in store order. limit is clamped to
// [1, models.ListLimit]; zero or negative means the cap.
func (rs *RecordService[T, P]) List(ctx context.Context, limit int) ([]*T, error) {
	return rs.repo.List(ctx, ClampLimit(limit))
}

func ClampLimit(limit int) int64 {
	if limit <= 0 || limit > models.ListLimit {
		return models.ListLimit
	}
	return int64(limit)
}
