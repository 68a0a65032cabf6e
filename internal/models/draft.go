package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft is an unpublished blog; each author has at most one.
type Draft struct {
	ID            primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint                `json:"author" bson:"author"`
	CategoryID    *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Title         string              `json:"title" bson:"title"`
	Slug          string              `json:"slug" bson:"slug"`
	BlogContent   string              `json:"blogContent" bson:"blogContent"`
	FeaturedImage string              `json:"featuredImage" bson:"featuredImage"`
	LastUpdated   time.Time           `json:"lastUpdated" bson:"lastUpdated"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
}

type SaveDraftRequest struct {
	Category      string `json:"category,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Title         string `json:"title,omitempty" validate:"omitempty,max=200"`
	Slug          string `json:"slug,omitempty" validate:"omitempty,max=220"`
	BlogContent   string `json:"blogContent,omitempty"`
	FeaturedImage string `json:"featuredImage,omitempty" validate:"omitempty,url"`
}
