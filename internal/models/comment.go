package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a blog
type Comment struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user" bson:"user"`
	BlogID    primitive.ObjectID `json:"blogid" bson:"blog"`
	Content   string             `json:"comment" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	Comment
	Author UserCompact `json:"author"`
}

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}
