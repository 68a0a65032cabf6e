package repositories

import (
	"context"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	// ListByRecipient returns the newest notifications of recipientID with
	// blog title and comment content joined in.
	ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.NotificationRecord, error)
	// MarkAsRead matches on both id and recipient and returns the updated record.
	MarkAsRead(ctx context.Context, notificationID string, recipientID uint) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	// DeleteByUser removes every notification sent to or by userID.
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

type mongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *mongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = notification.CreatedAt
	notification.Read = false
	_, err := r.collection.InsertOne(ctx, notification)
	return translate(err)
}

func (r *mongoNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.NotificationRecord, error) {
	cursor, err := r.collection.Aggregate(ctx, listPipeline(recipientID, limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.NotificationRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoNotificationRepository) MarkAsRead(ctx context.Context, notificationID string, recipientID uint) (*models.Notification, error) {
	objID, err := parseID(notificationID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objID, "recipient": recipientID}
	update := bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification models.Notification
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&notification); err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (r *mongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient": recipientID, "read": false})
}

func (r *mongoNotificationRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"sender": userID},
		bson.M{"recipient": userID},
	}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// listPipeline selects a recipient's newest notifications and joins the
// related blog title and comment content onto each.
func listPipeline(recipientID uint, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"recipient": recipientID}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "blogs",
			"localField":   "relatedBlog",
			"foreignField": "_id",
			"as":           "blogDoc",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "comments",
			"localField":   "relatedComment",
			"foreignField": "_id",
			"as":           "commentDoc",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"blogTitle":      bson.M{"$arrayElemAt": bson.A{"$blogDoc.title", 0}},
			"commentContent": bson.M{"$arrayElemAt": bson.A{"$commentDoc.content", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"blogDoc": 0, "commentDoc": 0}}},
	}
}
