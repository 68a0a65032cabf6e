package services

import (
	"context"
	"errors"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/mailer"
	"go.uber.org/zap"
)

type mailSender interface {
	Send(msg mailer.Message) error
}

// AccountService removes accounts together with everything they own.
type AccountService struct {
	users         repositories.UserRepository
	bans          repositories.BanRepository
	blogs         repositories.BlogRepository
	comments      repositories.CommentRepository
	likes         repositories.LikeRepository
	drafts        repositories.DraftRepository
	notifications *NotificationService
	directory     *UserDirectory
	mail          mailSender
	logger        *zap.SugaredLogger
}

func NewAccountService(
	users repositories.UserRepository,
	bans repositories.BanRepository,
	blogs repositories.BlogRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	drafts repositories.DraftRepository,
	notifications *NotificationService,
	directory *UserDirectory,
	mail mailSender,
	logger *zap.SugaredLogger,
) *AccountService {
	return &AccountService{
		users:         users,
		bans:          bans,
		blogs:         blogs,
		comments:      comments,
		likes:         likes,
		drafts:        drafts,
		notifications: notifications,
		directory:     directory,
		mail:          mail,
		logger:        logger,
	}
}

// DeleteAccount bans userID's e-mail, deletes their content and
// notifications, then the user row. Admin accounts cannot be deleted.
// Failures while cleaning up content are logged and do not stop the ban.
func (s *AccountService) DeleteAccount(ctx context.Context, adminID, userID uint) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return ErrForbidden
	}

	if s.mail != nil {
		if err := s.mail.Send(mailer.AccountDeletion(user.Email)); err != nil {
			s.logger.Warnw("failed to send deletion email", "user", user.ID, "error", err)
		}
	}

	ban := &models.Ban{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Reason:   "Account deleted by admin",
		BannedBy: adminID,
	}
	if err := s.bans.CreateBan(ctx, ban); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return err
	}

	s.purgeContent(ctx, user.ID)

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.directory.Forget(user.ID)
	s.logger.Infow("account deleted", "user", user.ID, "by", adminID)
	return nil
}

func (s *AccountService) purgeContent(ctx context.Context, userID uint) {
	log := s.logger.With("user", userID)

	blogIDs, err := s.blogs.ListBlogIDsByAuthor(ctx, userID)
	if err != nil {
		log.Errorw("listing blogs", "error", err)
	}
	if n, err := s.comments.DeleteByBlogs(ctx, blogIDs); err != nil {
		log.Errorw("deleting comments on blogs", "error", err)
	} else {
		log.Debugw("comments on blogs deleted", "count", n)
	}
	if n, err := s.likes.DeleteByBlogs(ctx, blogIDs); err != nil {
		log.Errorw("deleting likes on blogs", "error", err)
	} else {
		log.Debugw("likes on blogs deleted", "count", n)
	}
	if n, err := s.blogs.DeleteBlogsByAuthor(ctx, userID); err != nil {
		log.Errorw("deleting blogs", "error", err)
	} else {
		log.Debugw("blogs deleted", "count", n)
	}
	if n, err := s.comments.DeleteByUser(ctx, userID); err != nil {
		log.Errorw("deleting comments", "error", err)
	} else {
		log.Debugw("comments deleted", "count", n)
	}
	if n, err := s.likes.DeleteByUser(ctx, userID); err != nil {
		log.Errorw("deleting likes", "error", err)
	} else {
		log.Debugw("likes deleted", "count", n)
	}
	if n, err := s.notifications.DeleteForUser(ctx, userID); err != nil {
		log.Errorw("deleting notifications", "error", err)
	} else {
		log.Debugw("notifications deleted", "count", n)
	}
	if _, err := s.drafts.DeleteDraftsByAuthor(ctx, userID); err != nil {
		log.Errorw("deleting drafts", "error", err)
	}
}
