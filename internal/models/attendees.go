package models

import (
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Attendee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string             `bson:"lastName" json:"lastName" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required"`
	Phone     *string            `bson:"phone,omitempty" json:"phone,omitempty"`
}

func (a *Attendee) SetID(id primitive.ObjectID) { a.ID = id }

// Sanitize covers email and phone too; earlier handlers skipped them.
func (a *Attendee) Sanitize() error {
	fields := []helpers.Field{
		{Name: "firstName", Value: a.FirstName},
		{Name: "lastName", Value: a.LastName},
		{Name: "email", Value: a.Email},
	}
	if a.Phone != nil {
		fields = append(fields, helpers.Field{Name: "phone", Value: *a.Phone})
	}
	return helpers.SanitizeFields(fields...)
}
