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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByBlogID(ctx context.Context, blogID primitive.ObjectID) ([]models.Comment, error)
	CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error)
	// ListComments returns every comment when userID is 0, otherwise only that user's.
	ListComments(ctx context.Context, userID uint) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return translate(err)
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment); err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *MongoCommentRepository) GetCommentsByBlogID(ctx context.Context, blogID primitive.ObjectID) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"blog": blogID})
}

func (r *MongoCommentRepository) CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"blog": blogID})
}

func (r *MongoCommentRepository) ListComments(ctx context.Context, userID uint) ([]models.Comment, error) {
	filter := bson.M{}
	if userID != 0 {
		filter["user"] = userID
	}
	return r.find(ctx, filter)
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error) {
	if len(blogIDs) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"blog": bson.M{"$in": blogIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
