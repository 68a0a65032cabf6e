package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newContext builds an echo context for a JSON request, optionally
// authenticated as userID with role.
func newContext(method, target, body string, userID uint, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID, Role: role})
	}
	return c, rec
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

type memNotificationRepo struct {
	mu       sync.Mutex
	items    []models.Notification
	titles   map[primitive.ObjectID]string
	comments map[primitive.ObjectID]string
}

func (r *memNotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().Add(time.Duration(len(r.items)) * time.Second)
	r.items = append(r.items, *n)
	return nil
}

func (r *memNotificationRepo) ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NotificationRecord
	for i := len(r.items) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.items[i].RecipientID != recipientID {
			continue
		}
		rec := models.NotificationRecord{Notification: r.items[i]}
		if id := r.items[i].RelatedBlogID; id != nil {
			if title, ok := r.titles[*id]; ok {
				rec.BlogTitle = &title
			}
		}
		if id := r.items[i].RelatedCommentID; id != nil {
			if content, ok := r.comments[*id]; ok {
				rec.CommentContent = &content
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *memNotificationRepo) MarkAsRead(ctx context.Context, id string, recipientID uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID.Hex() == id && r.items[i].RecipientID == recipientID {
			r.items[i].Read = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if r.items[i].RecipientID == recipientID && !r.items[i].Read {
			r.items[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.RecipientID == recipientID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

type memUserRepo struct {
	users []models.User
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, err := r.GetUserByID(ctx, id); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.users, nil
}

func (r *memUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	for i := range r.users {
		if r.users[i].Email == email {
			r.users[i].Password = passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memUserRepo) DeleteUser(ctx context.Context, id uint) error {
	return nil
}

type memBanRepo struct {
	emails map[string]bool
}

func (r *memBanRepo) CreateBan(ctx context.Context, ban *models.Ban) error {
	r.emails[ban.Email] = true
	return nil
}

func (r *memBanRepo) IsBanned(ctx context.Context, email string) (bool, error) {
	return r.emails[email], nil
}
