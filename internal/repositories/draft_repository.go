package repositories

import (
	"context"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DraftRepository interface {
	GetDraftByAuthor(ctx context.Context, authorID uint) (*models.Draft, error)
	SaveDraft(ctx context.Context, draft *models.Draft) (*models.Draft, error)
	DeleteDraftsByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type MongoDraftRepository struct {
	collection *mongo.Collection
}

func NewMongoDraftRepository(db *mongo.Database) *MongoDraftRepository {
	return &MongoDraftRepository{collection: db.Collection("drafts")}
}

// GetDraftByAuthor returns the most recently updated draft of authorID.
func (r *MongoDraftRepository) GetDraftByAuthor(ctx context.Context, authorID uint) (*models.Draft, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	var draft models.Draft
	if err := r.collection.FindOne(ctx, bson.M{"author": authorID}, opts).Decode(&draft); err != nil {
		return nil, translate(err)
	}
	return &draft, nil
}

// SaveDraft upserts the author's draft with every field of draft.
func (r *MongoDraftRepository) SaveDraft(ctx context.Context, draft *models.Draft) (*models.Draft, error) {
	now := time.Now()
	set := bson.M{
		"title":         draft.Title,
		"slug":          draft.Slug,
		"blogContent":   draft.BlogContent,
		"featuredImage": draft.FeaturedImage,
		"lastUpdated":   now,
	}
	if draft.CategoryID != nil {
		set["category"] = draft.CategoryID
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"author": draft.AuthorID, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetSort(bson.D{{Key: "lastUpdated", Value: -1}})

	var saved models.Draft
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"author": draft.AuthorID}, update, opts).Decode(&saved); err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

func (r *MongoDraftRepository) DeleteDraftsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
