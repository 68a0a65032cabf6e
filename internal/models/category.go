package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
	Slug string `json:"slug" validate:"required,min=2,max=60"`
}
