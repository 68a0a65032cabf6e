package router

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/inkwell/backend/internal/handlers"
	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/pkg/config"
	"github.com/anonto42/inkwell/backend/pkg/logger"
	"github.com/anonto42/inkwell/backend/pkg/mailer"
	"github.com/labstack/echo/v4"
)

// userCacheTTL bounds how stale a cached sender profile may get.
const userCacheTTL = 5 * time.Minute

// SetupRoutes migrates the stores, wires dependencies and registers every
// route. google may be nil.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, google handlers.GoogleVerifier) error {
	log := logger.Named("router")

	if err := db.Postgres.AutoMigrate(&models.User{}, &models.Ban{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed")

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repositories.EnsureIndexes(ctx, mongoDB); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info("MongoDB indexes ensured")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	banRepo := repositories.NewPostgresBanRepository(db.Postgres)
	blogRepo := repositories.NewMongoBlogRepository(mongoDB)
	categoryRepo := repositories.NewMongoCategoryRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	likeRepo := repositories.NewMongoLikeRepository(mongoDB)
	draftRepo := repositories.NewMongoDraftRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	resetCodeRepo := repositories.NewRedisResetCodeRepository(db.Redis)
	statsRepo := repositories.NewStatsRepository(mongoDB, db.Postgres)

	// --- Services ---
	mail := mailer.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPDomain)
	directory := services.NewUserDirectory(userRepo, userCacheTTL)
	notifications := services.NewNotificationService(notificationRepo, directory, logger.Named("notifications"))
	engagement := services.NewEngagementService(blogRepo, likeRepo, commentRepo, directory, notifications, logger.Named("engagement"))
	accounts := services.NewAccountService(userRepo, banRepo, blogRepo, commentRepo, likeRepo, draftRepo,
		notifications, directory, mail, logger.Named("accounts"))
	passwordResets := services.NewPasswordResetService(userRepo, resetCodeRepo, mail, logger.Named("password-reset"))

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret, directory)
	optionalAuth := middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret, directory)

	e.GET("/health", handlers.HealthCheck)

	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(userRepo, banRepo, passwordResets, google, cfg.JWTSecret, cfg.IsProduction()).
		RegisterAuthRoutes(authGroup)
	log.Info("Auth routes configured")

	api := e.Group("/api/v1")
	handlers.NewUserHandler(userRepo, directory).RegisterProfileRoutes(api, auth)
	handlers.NewAdminHandler(userRepo, statsRepo, accounts).RegisterAdminRoutes(api, auth)
	handlers.NewCategoryHandler(categoryRepo).RegisterCategoryRoutes(api, auth)
	handlers.NewBlogHandler(blogRepo, categoryRepo, commentRepo, likeRepo, directory).RegisterBlogRoutes(api, auth)
	handlers.NewLikeHandler(engagement).RegisterLikeRoutes(api, auth, optionalAuth)
	handlers.NewCommentHandler(engagement).RegisterCommentRoutes(api, auth)
	handlers.NewDraftHandler(draftRepo).RegisterDraftRoutes(api, auth)
	handlers.NewNotificationHandler(notifications).RegisterNotificationRoutes(api, auth)

	log.Info("All routes configured")
	return nil
}
