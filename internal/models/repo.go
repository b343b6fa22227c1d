package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DefaultDbName = "event_management_db"

	EventsColName    = "events"
	AttendeesColName = "attendees"
	VenuesColName    = "venues"
	BookingsColName  = "bookings"
	MediaColName     = "media"

	// ListLimit caps every list query.
	ListLimit = 100
)

// Record is implemented by every document type served through the generic
// record store.
type Record interface {
	SetID(id primitive.ObjectID)
	Sanitize() error
}

// Document constrains a type parameter to a pointer to T that is a Record.
type Document[T any] interface {
	*T
	Record
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = DefaultDbName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// Ping checks that the database answers. Used by the readiness probe.
func (mdb *MongodbRepo) Ping(ctx context.Context) error {
	if mdb.mongodbClient == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Ping(ctx, nil)
}
