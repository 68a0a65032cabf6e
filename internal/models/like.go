package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like represents a like on a blog; (user, blog) is unique.
type Like struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user" bson:"user"`
	BlogID    primitive.ObjectID `json:"blogid" bson:"blog"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// LikeState is the result of a toggle or a status lookup.
type LikeState struct {
	LikeCount   int64 `json:"likecount"`
	IsUserLiked bool  `json:"isUserliked"`
}
