package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordRepo is single-collection CRUD access for one record type.
type RecordRepo[T any] interface {
	Create(ctx context.Context, rec *T) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Replace(ctx context.Context, id primitive.ObjectID, rec *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, limit int64) ([]*T, error)
}

type MongoRecordRepo[T any, P Document[T]] struct {
	col *mongo.Collection
}

func NewMongoRecordRepo[T any, P Document[T]](col *mongo.Collection) *MongoRecordRepo[T, P] {
	return &MongoRecordRepo[T, P]{col: col}
}

// RecordRepoFor binds a record type to one of the repo's collections.
func RecordRepoFor[T any, P Document[T]](mdb *MongodbRepo, colName string) (*MongoRecordRepo[T, P], error) {
	col, err := mdb.GetCollection(colName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection %s: %w", colName, err)
	}
	return NewMongoRecordRepo[T, P](col), nil
}

func (r *MongoRecordRepo[T, P]) Create(ctx context.Context, rec *T) (primitive.ObjectID, error) {
	// the store assigns the key, whatever the client sent
	P(rec).SetID(primitive.NilObjectID)

	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", r.col.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	P(rec).SetID(id)
	return id, nil
}

func (r *MongoRecordRepo[T, P]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var rec T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", r.col.Name(), id.Hex(), helpers.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find %s %s: %w", r.col.Name(), id.Hex(), err)
	}
	return &rec, nil
}

func (r *MongoRecordRepo[T, P]) Replace(ctx context.Context, id primitive.ObjectID, rec *T) error {
	// _id is omitempty, so a zero id keeps the replacement from touching the key
	P(rec).SetID(primitive.NilObjectID)

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, rec)
	if err != nil {
		return fmt.Errorf("failed to replace %s %s: %w", r.col.Name(), id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", r.col.Name(), id.Hex(), helpers.ErrNotFound)
	}
	P(rec).SetID(id)
	return nil
}

func (r *MongoRecordRepo[T, P]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.col.Name(), id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", r.col.Name(), id.Hex(), helpers.ErrNotFound)
	}
	return nil
}

func (r *MongoRecordRepo[T, P]) List(ctx context.Context, limit int64) ([]*T, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("error finding %s: %w", r.col.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]*T, 0)
	for cursor.Next(ctx) {
		var rec T
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", r.col.Name(), err)
		}
		records = append(records, &rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return records, nil
}
