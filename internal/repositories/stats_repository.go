package repositories

import (
	"context"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// StatsRepository aggregates the admin dashboard across both stores.
type StatsRepository interface {
	Counts(ctx context.Context) (models.DashboardStats, error)
	BlogsPerCategory(ctx context.Context) ([]models.CategoryCount, error)
	SignupsPerMonth(ctx context.Context, since time.Time) ([]models.MonthCount, error)
}

type statsRepository struct {
	mongo *mongo.Database
	pg    *gorm.DB
}

func NewStatsRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StatsRepository {
	return &statsRepository{mongo: mongoDB, pg: pgDB}
}

func (r *statsRepository) Counts(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalBlogs, err = r.mongo.Collection("blogs").CountDocuments(ctx, bson.D{}); err != nil {
		return stats, err
	}
	if stats.TotalCategories, err = r.mongo.Collection("categories").CountDocuments(ctx, bson.D{}); err != nil {
		return stats, err
	}
	if stats.TotalLikes, err = r.mongo.Collection("likes").CountDocuments(ctx, bson.D{}); err != nil {
		return stats, err
	}
	err = r.pg.WithContext(ctx).Model(&models.User{}).Where("role <> ?", models.RoleAdmin).Count(&stats.TotalUsers).Error
	return stats, err
}

func (r *statsRepository) BlogsPerCategory(ctx context.Context) ([]models.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$project", Value: bson.M{"name": "$category.name", "count": 1, "_id": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "name", Value: 1}}}},
	}
	cursor, err := r.mongo.Collection("blogs").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []models.CategoryCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// SignupsPerMonth groups non-admin registrations since the given time by YYYY-MM.
func (r *statsRepository) SignupsPerMonth(ctx context.Context, since time.Time) ([]models.MonthCount, error) {
	counts := []models.MonthCount{}
	err := r.pg.WithContext(ctx).
		Model(&models.User{}).
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("created_at >= ? AND role <> ?", since, models.RoleAdmin).
		Group("month").
		Order("month ASC").
		Scan(&counts).Error
	return counts, err
}
