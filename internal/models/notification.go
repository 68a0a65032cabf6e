package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	// NotificationFollow is reserved; nothing produces it yet.
	NotificationFollow NotificationType = "follow"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationFollow:
		return true
	}
	return false
}

// Notification records "sender did something relevant to recipient".
// Only Read ever changes after insert.
type Notification struct {
	ID               primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	SenderID         uint                `json:"sender,omitempty" bson:"sender,omitempty"`
	RecipientID      uint                `json:"recipient" bson:"recipient"`
	Type             NotificationType    `json:"type" bson:"type"`
	Content          string              `json:"content" bson:"content"`
	Read             bool                `json:"read" bson:"read"`
	RelatedBlogID    *primitive.ObjectID `json:"relatedBlog,omitempty" bson:"relatedBlog,omitempty"`
	RelatedCommentID *primitive.ObjectID `json:"relatedComment,omitempty" bson:"relatedComment,omitempty"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// NewNotification is the input of the best-effort notification writer.
type NewNotification struct {
	RecipientID      uint
	Type             NotificationType
	Content          string
	SenderID         uint
	RelatedBlogID    *primitive.ObjectID
	RelatedCommentID *primitive.ObjectID
}

// NotificationRecord is a stored notification with its blog title and
// comment content joined in by the repository.
type NotificationRecord struct {
	Notification `bson:",inline"`

	BlogTitle      *string `bson:"blogTitle,omitempty"`
	CommentContent *string `bson:"commentContent,omitempty"`
}

type BlogRef struct {
	Title string `json:"title"`
}

type CommentRef struct {
	Content string `json:"content"`
}

// NotificationView is the external shape served to clients.
type NotificationView struct {
	ID        primitive.ObjectID `json:"_id"`
	Type      NotificationType   `json:"type"`
	Read      bool               `json:"read"`
	CreatedAt time.Time          `json:"createdAt"`
	FromUser  *UserCompact       `json:"fromUser"`
	Blog      *BlogRef           `json:"blog"`
	Comment   *CommentRef        `json:"comment"`
	Message   string             `json:"message"`
}
