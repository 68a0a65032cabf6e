package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeToggle reports the outcome of a toggle. Created is true only for the
// request whose write actually inserted the like.
type LikeToggle struct {
	Liked   bool
	Created bool
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID uint, blogID primitive.ObjectID) (LikeToggle, error)
	HasUserLikedBlog(ctx context.Context, userID uint, blogID primitive.ObjectID) (bool, error)
	CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB. The
// collection carries a unique index on (user, blog).
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// ToggleLike removes an existing like, otherwise inserts one via upsert.
func (r *MongoLikeRepository) ToggleLike(ctx context.Context, userID uint, blogID primitive.ObjectID) (LikeToggle, error) {
	key := bson.M{"user": userID, "blog": blogID}

	del, err := r.collection.DeleteOne(ctx, key)
	if err != nil {
		return LikeToggle{}, err
	}
	if del.DeletedCount > 0 {
		return LikeToggle{Liked: false}, nil
	}

	update := bson.M{"$setOnInsert": bson.M{"user": userID, "blog": blogID, "createdAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, key, update, options.Update().SetUpsert(true))
	if err != nil {
		// a concurrent toggle inserted first
		if mongo.IsDuplicateKeyError(err) {
			return LikeToggle{Liked: true}, nil
		}
		return LikeToggle{}, err
	}
	return LikeToggle{Liked: true, Created: res.UpsertedCount == 1}, nil
}

func (r *MongoLikeRepository) HasUserLikedBlog(ctx context.Context, userID uint, blogID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": userID, "blog": blogID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoLikeRepository) CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"blog": blogID})
}

func (r *MongoLikeRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoLikeRepository) DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error) {
	if len(blogIDs) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"blog": bson.M{"$in": blogIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
