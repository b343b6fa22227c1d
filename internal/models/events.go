package models

import (
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description" json:"description" validate:"required"`
	Date         string             `bson:"date" json:"date" validate:"required"`         // e.g., "2025-10-01"
	VenueID      string             `bson:"venue_id" json:"venue_id" validate:"required"` // not checked against venues
	MaxAttendees int                `bson:"max_attendees" json:"max_attendees" validate:"min=1"`
}

func (e *Event) SetID(id primitive.ObjectID) { e.ID = id }

func (e *Event) Sanitize() error {
	return helpers.SanitizeFields(
		helpers.Field{Name: "title", Value: e.Title},
		helpers.Field{Name: "description", Value: e.Description},
		helpers.Field{Name: "date", Value: e.Date},
		helpers.Field{Name: "venue_id", Value: e.VenueID},
	)
}
