package services

import (
	"context"
	"errors"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/metrics"
	"go.uber.org/zap"
)

// NotificationListLimit caps how many notifications List returns.
const NotificationListLimit = 50

// NotificationService creates notifications as a best-effort side effect of
// likes and comments and serves each recipient's read state.
type NotificationService struct {
	repo   repositories.NotificationRepository
	users  *UserDirectory
	logger *zap.SugaredLogger
}

func NewNotificationService(repo repositories.NotificationRepository, users *UserDirectory, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{repo: repo, users: users, logger: logger}
}

// Create stores one unread notification and returns it. It never fails the
// caller: on invalid input or a write error it logs and returns nil.
func (s *NotificationService) Create(ctx context.Context, n models.NewNotification) *models.Notification {
	if err := validateNotification(n); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(n.Type)).Inc()
		s.logger.Warnw("notification rejected", "recipient", n.RecipientID, "type", n.Type, "error", err)
		return nil
	}

	notification := &models.Notification{
		SenderID:         n.SenderID,
		RecipientID:      n.RecipientID,
		Type:             n.Type,
		Content:          n.Content,
		RelatedBlogID:    n.RelatedBlogID,
		RelatedCommentID: n.RelatedCommentID,
	}
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(n.Type)).Inc()
		s.logger.Errorw("error creating notification", "recipient", n.RecipientID, "type", n.Type, "error", err)
		return nil
	}

	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	return notification
}

func validateNotification(n models.NewNotification) error {
	switch {
	case n.RecipientID == 0:
		return errors.New("recipient is required")
	case !n.Type.Valid():
		return errors.New("unknown notification type")
	case n.Content == "":
		return errors.New("content is required")
	}
	return nil
}

// List returns the newest notifications of userID in their external shape.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.NotificationView, error) {
	records, err := s.repo.ListByRecipient(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint, 0, len(records))
	for _, r := range records {
		senderIDs = append(senderIDs, r.SenderID)
	}
	senders, err := s.users.Resolve(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, len(records))
	for i, r := range records {
		views[i] = toView(r, senders)
	}
	return views, nil
}

func toView(r models.NotificationRecord, senders map[uint]models.UserCompact) models.NotificationView {
	view := models.NotificationView{
		ID:        r.ID,
		Type:      r.Type,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
		Message:   r.Content,
	}
	if sender, ok := senders[r.SenderID]; ok {
		view.FromUser = &models.UserCompact{Name: sender.Name, Avatar: sender.Avatar}
	}
	if r.BlogTitle != nil {
		view.Blog = &models.BlogRef{Title: *r.BlogTitle}
	}
	if r.CommentContent != nil {
		view.Comment = &models.CommentRef{Content: *r.CommentContent}
	}
	return view
}

// MarkRead flags one of userID's notifications as read. A notification that
// does not exist or belongs to someone else yields ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, notificationID string) (*models.Notification, error) {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllRead flags every unread notification of userID as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	_, err := s.repo.MarkAllAsRead(ctx, userID)
	return err
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// DeleteForUser removes notifications userID sent or received.
func (s *NotificationService) DeleteForUser(ctx context.Context, userID uint) (int64, error) {
	return s.repo.DeleteByUser(ctx, userID)
}
