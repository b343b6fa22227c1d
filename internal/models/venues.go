package models

import (
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Venue struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Address  string             `bson:"address" json:"address" validate:"required"`
	Capacity int                `bson:"capacity" json:"capacity" validate:"min=1"` // total max capacity
}

func (v *Venue) SetID(id primitive.ObjectID) { v.ID = id }

func (v *Venue) Sanitize() error {
	return helpers.SanitizeFields(
		helpers.Field{Name: "name", Value: v.Name},
		helpers.Field{Name: "address", Value: v.Address},
	)
}
