package services

import (
	"context"
	"fmt"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/metrics"
	"go.uber.org/zap"
)

type notifier interface {
	Create(ctx context.Context, n models.NewNotification) *models.Notification
}

// EngagementService owns likes and comments and fans them out to the
// blog author as notifications.
type EngagementService struct {
	blogs         repositories.BlogRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	users         *UserDirectory
	notifications notifier
	logger        *zap.SugaredLogger
}

func NewEngagementService(
	blogs repositories.BlogRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	users *UserDirectory,
	notifications notifier,
	logger *zap.SugaredLogger,
) *EngagementService {
	return &EngagementService{
		blogs:         blogs,
		likes:         likes,
		comments:      comments,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// ToggleLike likes blogID for userID, or removes the like if it exists.
// Only a newly created like notifies the author.
func (s *EngagementService) ToggleLike(ctx context.Context, userID uint, blogID string) (models.LikeState, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return models.LikeState{}, err
	}

	toggle, err := s.likes.ToggleLike(ctx, userID, blog.ID)
	if err != nil {
		return models.LikeState{}, err
	}

	if toggle.Liked {
		metrics.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		metrics.LikeToggles.WithLabelValues("unliked").Inc()
	}

	if toggle.Created && blog.AuthorID != userID {
		name := s.displayName(ctx, userID)
		s.notifications.Create(ctx, models.NewNotification{
			RecipientID:   blog.AuthorID,
			Type:          models.NotificationLike,
			Content:       fmt.Sprintf("%s liked your post \"%s\"", name, blog.Title),
			SenderID:      userID,
			RelatedBlogID: &blog.ID,
		})
	}

	count, err := s.likes.CountByBlogID(ctx, blog.ID)
	if err != nil {
		return models.LikeState{}, err
	}
	return models.LikeState{LikeCount: count, IsUserLiked: toggle.Liked}, nil
}

// LikeStatus reports the like count of blogID and, when userID is non-zero,
// whether that user liked it.
func (s *EngagementService) LikeStatus(ctx context.Context, blogID string, userID uint) (models.LikeState, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return models.LikeState{}, err
	}
	count, err := s.likes.CountByBlogID(ctx, blog.ID)
	if err != nil {
		return models.LikeState{}, err
	}
	state := models.LikeState{LikeCount: count}
	if userID != 0 {
		if state.IsUserLiked, err = s.likes.HasUserLikedBlog(ctx, userID, blog.ID); err != nil {
			return models.LikeState{}, err
		}
	}
	return state, nil
}

// AddComment stores a comment, then notifies the blog author unless they
// wrote it themselves.
func (s *EngagementService) AddComment(ctx context.Context, userID uint, blogID, content string) (*models.Comment, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:  userID,
		BlogID:  blog.ID,
		Content: content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if blog.AuthorID != userID {
		name := s.displayName(ctx, userID)
		s.notifications.Create(ctx, models.NewNotification{
			RecipientID:      blog.AuthorID,
			Type:             models.NotificationComment,
			Content:          fmt.Sprintf("%s commented on your post \"%s\"", name, blog.Title),
			SenderID:         userID,
			RelatedBlogID:    &blog.ID,
			RelatedCommentID: &comment.ID,
		})
	}
	return comment, nil
}

// displayName is used only to render notification text, so lookup
// failures degrade to a neutral name.
func (s *EngagementService) displayName(ctx context.Context, userID uint) string {
	user, ok, err := s.users.Lookup(ctx, userID)
	if err != nil {
		s.logger.Warnw("could not resolve actor name", "user", userID, "error", err)
	}
	if !ok || user.Name == "" {
		return "Someone"
	}
	return user.Name
}

func (s *EngagementService) ListComments(ctx context.Context, blogID string) ([]models.CommentView, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByBlogID(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, comments)
}

func (s *EngagementService) CommentCount(ctx context.Context, blogID string) (int64, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return 0, err
	}
	return s.comments.CountByBlogID(ctx, blog.ID)
}

// ListAllComments returns every comment for admins and the caller's own otherwise.
func (s *EngagementService) ListAllComments(ctx context.Context, userID uint, isAdmin bool) ([]models.CommentView, error) {
	owner := userID
	if isAdmin {
		owner = 0
	}
	comments, err := s.comments.ListComments(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, comments)
}

// DeleteComment removes a comment written by userID; admins may remove any.
func (s *EngagementService) DeleteComment(ctx context.Context, userID uint, isAdmin bool, commentID string) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.comments.DeleteComment(ctx, comment.ID)
}

func (s *EngagementService) withAuthors(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.UserID
	}
	authors, err := s.users.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, len(comments))
	for i, c := range comments {
		views[i] = models.CommentView{Comment: c, Author: authors[c.UserID]}
	}
	return views, nil
}
