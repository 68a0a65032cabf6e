package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a published post stored in MongoDB
type Blog struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint               `json:"author" bson:"author"`
	CategoryID    primitive.ObjectID `json:"category" bson:"category"`
	Title         string             `json:"title" bson:"title"`
	Slug          string             `json:"slug" bson:"slug"`
	BlogContent   string             `json:"blogContent" bson:"blogContent"`
	FeaturedImage string             `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateBlogRequest struct {
	Category      string `json:"category" validate:"required,len=24,hexadecimal"`
	Title         string `json:"title" validate:"required,min=3,max=200"`
	Slug          string `json:"slug" validate:"required,min=3,max=220"`
	BlogContent   string `json:"blogContent" validate:"required"`
	FeaturedImage string `json:"featuredImage,omitempty" validate:"omitempty,url"`
}

type UpdateBlogRequest struct {
	Category      string `json:"category,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Title         string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Slug          string `json:"slug,omitempty" validate:"omitempty,min=3,max=220"`
	BlogContent   string `json:"blogContent,omitempty"`
	FeaturedImage string `json:"featuredImage,omitempty" validate:"omitempty,url"`
}

// BlogFilter narrows a blog listing; zero values mean "any".
type BlogFilter struct {
	AuthorID   uint
	CategoryID primitive.ObjectID
	Skip       int64
	Limit      int64
}

// BlogView is a blog with its author resolved.
type BlogView struct {
	Blog
	Author UserCompact `json:"author"`
}
