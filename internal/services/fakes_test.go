package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

type fakeNotificationRepo struct {
	mu       sync.Mutex
	items    []models.Notification
	titles   map[primitive.ObjectID]string
	comments *fakeCommentRepo
	clock    time.Time
	failing  bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		titles: map[primitive.ObjectID]string{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStoreDown
	}
	r.clock = r.clock.Add(time.Second)
	n.ID = primitive.NewObjectID()
	n.Read = false
	n.CreatedAt = r.clock
	n.UpdatedAt = r.clock
	r.items = append(r.items, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStoreDown
	}
	var out []models.NotificationRecord
	for _, n := range r.items {
		if n.RecipientID != recipientID {
			continue
		}
		rec := models.NotificationRecord{Notification: n}
		if n.RelatedBlogID != nil {
			if title, ok := r.titles[*n.RelatedBlogID]; ok {
				rec.BlogTitle = &title
			}
		}
		if n.RelatedCommentID != nil && r.comments != nil {
			if content, ok := r.comments.content(*n.RelatedCommentID); ok {
				rec.CommentContent = &content
			}
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID string, recipientID uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].RecipientID == recipientID {
			r.items[i].Read = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
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

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
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

func (r *fakeNotificationRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var n int64
	for _, item := range r.items {
		if item.SenderID == userID || item.RecipientID == userID {
			n++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return n, nil
}

func (r *fakeNotificationRepo) forRecipient(id uint) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.items {
		if n.RecipientID == id {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	lookups int
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*models.User{}}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uint(len(r.users) + 1)
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if !u.IsAdmin() {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.Password = passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[primitive.ObjectID]models.Blog
}

func newFakeBlogRepo(blogs ...models.Blog) *fakeBlogRepo {
	r := &fakeBlogRepo{blogs: map[primitive.ObjectID]models.Blog{}}
	for _, b := range blogs {
		r.blogs[b.ID] = b
	}
	return r
}

func (r *fakeBlogRepo) CreateBlog(ctx context.Context, blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog.ID = primitive.NewObjectID()
	r.blogs[blog.ID] = *blog
	return nil
}

func (r *fakeBlogRepo) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	b, ok := r.blogs[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBlogRepo) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blogs {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeBlogRepo) ListBlogs(ctx context.Context, filter models.BlogFilter) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Blog
	for _, b := range r.blogs {
		if filter.AuthorID != 0 && b.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBlogRepo) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs[blog.ID] = *blog
	return nil
}

func (r *fakeBlogRepo) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blogs, id)
	return nil
}

func (r *fakeBlogRepo) ListBlogIDsByAuthor(ctx context.Context, authorID uint) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []primitive.ObjectID
	for id, b := range r.blogs {
		if b.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeBlogRepo) DeleteBlogsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.blogs {
		if b.AuthorID == authorID {
			delete(r.blogs, id)
			n++
		}
	}
	return n, nil
}

type likeKey struct {
	user uint
	blog primitive.ObjectID
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[likeKey]bool{}}
}

func (r *fakeLikeRepo) ToggleLike(ctx context.Context, userID uint, blogID primitive.ObjectID) (repositories.LikeToggle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, blogID}
	if r.likes[k] {
		delete(r.likes, k)
		return repositories.LikeToggle{Liked: false}, nil
	}
	r.likes[k] = true
	return repositories.LikeToggle{Liked: true, Created: true}, nil
}

func (r *fakeLikeRepo) HasUserLikedBlog(ctx context.Context, userID uint, blogID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[likeKey{userID, blogID}], nil
}

func (r *fakeLikeRepo) CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.likes {
		if k.blog == blogID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.likes {
		if k.user == userID {
			delete(r.likes, k)
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range blogIDs {
		for k := range r.likes {
			if k.blog == id {
				delete(r.likes, k)
				n++
			}
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
}

func (r *fakeCommentRepo) CreateComment(ctx context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeCommentRepo) content(id primitive.ObjectID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == id {
			return c.Content, true
		}
	}
	return "", false
}

func (r *fakeCommentRepo) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID.Hex() == id {
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCommentRepo) GetCommentsByBlogID(ctx context.Context, blogID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.BlogID == blogID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) CountByBlogID(ctx context.Context, blogID primitive.ObjectID) (int64, error) {
	list, _ := r.GetCommentsByBlogID(ctx, blogID)
	return int64(len(list)), nil
}

func (r *fakeCommentRepo) ListComments(ctx context.Context, userID uint) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if userID == 0 || c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCommentRepo) deleteWhere(match func(models.Comment) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	var n int64
	for _, c := range r.comments {
		if match(c) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.comments = kept
	return n
}

func (r *fakeCommentRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	return r.deleteWhere(func(c models.Comment) bool { return c.UserID == userID }), nil
}

func (r *fakeCommentRepo) DeleteByBlogs(ctx context.Context, blogIDs []primitive.ObjectID) (int64, error) {
	set := map[primitive.ObjectID]bool{}
	for _, id := range blogIDs {
		set[id] = true
	}
	return r.deleteWhere(func(c models.Comment) bool { return set[c.BlogID] }), nil
}

type fakeBanRepo struct {
	bans []models.Ban
}

func (r *fakeBanRepo) CreateBan(ctx context.Context, ban *models.Ban) error {
	for _, b := range r.bans {
		if b.Email == ban.Email {
			return repositories.ErrDuplicate
		}
	}
	r.bans = append(r.bans, *ban)
	return nil
}

func (r *fakeBanRepo) IsBanned(ctx context.Context, email string) (bool, error) {
	for _, b := range r.bans {
		if b.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeDraftRepo struct {
	drafts map[uint]models.Draft
}

func (r *fakeDraftRepo) GetDraftByAuthor(ctx context.Context, authorID uint) (*models.Draft, error) {
	d, ok := r.drafts[authorID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDraftRepo) SaveDraft(ctx context.Context, draft *models.Draft) (*models.Draft, error) {
	if r.drafts == nil {
		r.drafts = map[uint]models.Draft{}
	}
	r.drafts[draft.AuthorID] = *draft
	return draft, nil
}

func (r *fakeDraftRepo) DeleteDraftsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	if _, ok := r.drafts[authorID]; !ok {
		return 0, nil
	}
	delete(r.drafts, authorID)
	return 1, nil
}

type fakeCodeRepo struct {
	codes map[string]string
	ttls  map[string]time.Duration
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (r *fakeCodeRepo) SetCode(ctx context.Context, email, code string, ttl time.Duration) error {
	r.codes[email] = code
	r.ttls[email] = ttl
	return nil
}

func (r *fakeCodeRepo) GetCode(ctx context.Context, email string) (string, error) {
	code, ok := r.codes[email]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return code, nil
}

func (r *fakeCodeRepo) ClearCode(ctx context.Context, email string) error {
	delete(r.codes, email)
	return nil
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
