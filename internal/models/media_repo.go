package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

var errContentClosed = errors.New("media content already closed")

type MediaRepo interface {
	InsertMedia(ctx context.Context, media *Media) (primitive.ObjectID, error)
	GetMedia(ctx context.Context, id primitive.ObjectID) (*Media, error)
	LatestMedia(ctx context.Context, linkField string, linkID primitive.ObjectID, kind MediaKind) (*MediaContent, error)
	ListMediaByLink(ctx context.Context, linkField string, linkID primitive.ObjectID, limit int64) ([]*MediaMeta, error)
	EnsureMediaIndexes(ctx context.Context) error
}

// MediaContent pairs the metadata of one upload with a reader over its bytes.
// Body must be closed once the consumer is done.
type MediaContent struct {
	MediaMeta
	Body io.ReadCloser
}

// contentReader reads the binary payload straight out of the fetched document
// buffer. Close drops the buffer so it can be collected even if the
// MediaContent value outlives the response.
type contentReader struct {
	r *bytes.Reader
}

func newContentReader(data []byte) *contentReader {
	return &contentReader{r: bytes.NewReader(data)}
}

func (c *contentReader) Read(p []byte) (int, error) {
	if c.r == nil {
		return 0, errContentClosed
	}
	return c.r.Read(p)
}

func (c *contentReader) Close() error {
	c.r = nil
	return nil
}

// EnsureMediaIndexes creates the index behind latest-by-link lookups.
func (mdb *MongodbRepo) EnsureMediaIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(MediaColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "link_field", Value: 1},
				{Key: "link_id", Value: 1},
				{Key: "media_type", Value: 1},
				{Key: "uploaded_at", Value: -1},
			},
			Options: options.Index().SetName("link_kind_uploaded_at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating media indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) InsertMedia(ctx context.Context, media *Media) (primitive.ObjectID, error) {
	col, err := mdb.GetCollection(MediaColName)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error getting collection: %w", err)
	}

	media.ID = primitive.NilObjectID
	res, err := col.InsertOne(ctx, media)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert media: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	media.ID = id
	return id, nil
}

func (mdb *MongodbRepo) GetMedia(ctx context.Context, id primitive.ObjectID) (*Media, error) {
	col, err := mdb.GetCollection(MediaColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var media Media
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("media %s: %w", id.Hex(), helpers.ErrNotFound)
		}
		return nil, fmt.Errorf("error finding media by ID: %w", err)
	}
	return &media, nil
}

// LatestMedia returns the newest upload of kind for the given link. Ties on
// uploaded_at fall back to _id, which grows with insertion order.
func (mdb *MongodbRepo) LatestMedia(ctx context.Context, linkField string, linkID primitive.ObjectID, kind MediaKind) (*MediaContent, error) {
	col, err := mdb.GetCollection(MediaColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"link_field": linkField,
		"link_id":    linkID,
		"media_type": kind,
	}
	opts := options.FindOne().SetSort(bson.D{
		{Key: "uploaded_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	raw, err := col.FindOne(ctx, filter, opts).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s for %s %s: %w", kind, linkField, linkID.Hex(), helpers.ErrNotFound)
		}
		return nil, fmt.Errorf("error finding latest %s: %w", kind, err)
	}

	return decodeMediaContent(raw)
}

// decodeMediaContent splits a raw media document into metadata and a body
// that reads the binary field in place.
func decodeMediaContent(raw bson.Raw) (*MediaContent, error) {
	var meta MediaMeta
	if err := bson.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("error decoding media metadata: %w", err)
	}

	var data []byte
	val, err := raw.LookupErr("content")
	switch {
	case err == nil:
		_, bin, ok := val.BinaryOK()
		if !ok {
			return nil, fmt.Errorf("media %s content is %s, not binary", meta.ID.Hex(), val.Type)
		}
		data = bin
	case errors.Is(err, bsoncore.ErrElementNotFound):
		// empty uploads are stored without a content field
	default:
		return nil, fmt.Errorf("error reading media content: %w", err)
	}

	meta.Size = int64(len(data))
	return &MediaContent{MediaMeta: meta, Body: newContentReader(data)}, nil
}

func (mdb *MongodbRepo) ListMediaByLink(ctx context.Context, linkField string, linkID primitive.ObjectID, limit int64) ([]*MediaMeta, error) {
	col, err := mdb.GetCollection(MediaColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"content": 0}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{"link_field": linkField, "link_id": linkID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding media: %w", err)
	}
	defer cursor.Close(ctx)

	media := make([]*MediaMeta, 0)
	if err := cursor.All(ctx, &media); err != nil {
		return nil, fmt.Errorf("error decoding media: %w", err)
	}
	return media, nil
}
