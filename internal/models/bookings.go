package models

import (
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking references an event and an attendee by id; neither is checked
// for existence.
type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string             `bson:"event_id" json:"event_id" validate:"required"`
	AttendeeID string             `bson:"attendee_id" json:"attendee_id" validate:"required"`
	TicketType string             `bson:"ticket_type" json:"ticket_type" validate:"required"` // e.g., "general", "vip"
	Quantity   int                `bson:"quantity" json:"quantity" validate:"min=1"`
}

func (b *Booking) SetID(id primitive.ObjectID) { b.ID = id }

func (b *Booking) Sanitize() error {
	return helpers.SanitizeFields(
		helpers.Field{Name: "event_id", Value: b.EventID},
		helpers.Field{Name: "attendee_id", Value: b.AttendeeID},
		helpers.Field{Name: "ticket_type", Value: b.TicketType},
	)
}
