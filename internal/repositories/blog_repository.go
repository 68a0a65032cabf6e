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

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	ListBlogs(ctx context.Context, filter models.BlogFilter) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, blog *models.Blog) error
	DeleteBlog(ctx context.Context, id primitive.ObjectID) error
	ListBlogIDsByAuthor(ctx context.Context, authorID uint) ([]primitive.ObjectID, error)
	DeleteBlogsByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

// CreateBlog creates a new blog in MongoDB
func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	_, err := r.collection.InsertOne(ctx, blog)
	return translate(err)
}

// GetBlogByID retrieves a blog by ID from MongoDB
func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var blog models.Blog
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blog); err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

func (r *MongoBlogRepository) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&blog); err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

// ListBlogs retrieves blogs newest first with pagination
func (r *MongoBlogRepository) ListBlogs(ctx context.Context, filter models.BlogFilter) ([]models.Blog, error) {
	query := bson.M{}
	if filter.AuthorID != 0 {
		query["author"] = filter.AuthorID
	}
	if !filter.CategoryID.IsZero() {
		query["category"] = filter.CategoryID
	}

	findOptions := options.Find().
		SetSkip(filter.Skip).
		SetLimit(filter.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// UpdateBlog overwrites the editable fields of an existing blog
func (r *MongoBlogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"category":      blog.CategoryID,
			"title":         blog.Title,
			"slug":          blog.Slug,
			"blogContent":   blog.BlogContent,
			"featuredImage": blog.FeaturedImage,
			"updatedAt":     blog.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": blog.ID}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBlog deletes a blog by ID from MongoDB
func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBlogRepository) ListBlogIDsByAuthor(ctx context.Context, authorID uint) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"author": authorID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *MongoBlogRepository) DeleteBlogsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
