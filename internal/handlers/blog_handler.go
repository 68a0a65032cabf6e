package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultBlogPageSize = 10
	maxBlogPageSize     = 50
)

// BlogHandler handles HTTP requests related to blogs
type BlogHandler struct {
	blogRepository     repositories.BlogRepository
	categoryRepository repositories.CategoryRepository
	commentRepository  repositories.CommentRepository
	likeRepository     repositories.LikeRepository
	users              *services.UserDirectory
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(
	blogRepo repositories.BlogRepository,
	categoryRepo repositories.CategoryRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	users *services.UserDirectory,
) *BlogHandler {
	return &BlogHandler{
		blogRepository:     blogRepo,
		categoryRepository: categoryRepo,
		commentRepository:  commentRepo,
		likeRepository:     likeRepo,
		users:              users,
	}
}

// RegisterBlogRoutes registers blog-related routes
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/blogs", h.GetBlogs)
	g.GET("/blogs/slug/:slug", h.GetBlogBySlug)
	g.GET("/blogs/:id", h.GetBlog)
	g.POST("/blogs", h.CreateBlog, auth)
	g.PUT("/blogs/:id", h.UpdateBlog, auth)
	g.DELETE("/blogs/:id", h.DeleteBlog, auth)
}

// CreateBlog creates a new blog
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	category, err := h.categoryRepository.GetCategoryByID(ctx, req.Category)
	if err != nil {
		return notFound(err, "Category not found", "Error creating blog")
	}

	blog := &models.Blog{
		AuthorID:      currentUserID,
		CategoryID:    category.ID,
		Title:         req.Title,
		Slug:          req.Slug,
		BlogContent:   req.BlogContent,
		FeaturedImage: req.FeaturedImage,
	}
	if err := h.blogRepository.CreateBlog(ctx, blog); err != nil {
		return httpError(err, "Error creating blog")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Blog added successfully.", "blog": blog})
}

// GetBlogs lists blogs newest first; supports category, author, page and limit query params
func (h *BlogHandler) GetBlogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxBlogPageSize {
		limit = defaultBlogPageSize
	}

	filter := models.BlogFilter{
		Skip:  int64((page - 1) * limit),
		Limit: int64(limit),
	}
	if category := c.QueryParam("category"); category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID")
		}
		filter.CategoryID = id
	}
	if author := c.QueryParam("author"); author != "" {
		id, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		filter.AuthorID = uint(id)
	}

	ctx := c.Request().Context()
	blogs, err := h.blogRepository.ListBlogs(ctx, filter)
	if err != nil {
		return httpError(err, "Error fetching blogs")
	}
	views, err := h.withAuthors(ctx, blogs)
	if err != nil {
		return httpError(err, "Error fetching blogs")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "blogs": views, "page": page, "limit": limit})
}

// GetBlog retrieves a single blog by ID
func (h *BlogHandler) GetBlog(c echo.Context) error {
	ctx := c.Request().Context()
	blog, err := h.blogRepository.GetBlogByID(ctx, c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error fetching blog")
	}
	return h.respondWithBlog(c, blog)
}

// GetBlogBySlug retrieves a single blog by slug
func (h *BlogHandler) GetBlogBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	blog, err := h.blogRepository.GetBlogBySlug(ctx, c.Param("slug"))
	if err != nil {
		return notFound(err, "Blog not found", "Error fetching blog")
	}
	return h.respondWithBlog(c, blog)
}

func (h *BlogHandler) respondWithBlog(c echo.Context, blog *models.Blog) error {
	views, err := h.withAuthors(c.Request().Context(), []models.Blog{*blog})
	if err != nil {
		return httpError(err, "Error fetching blog")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "blog": views[0]})
}

// UpdateBlog updates an existing blog; only its author or an admin may edit it
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	blog, err := h.blogRepository.GetBlogByID(ctx, c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error updating blog")
	}
	if blog.AuthorID != currentUserID && !isAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to edit this blog")
	}

	if req.Category != "" {
		category, err := h.categoryRepository.GetCategoryByID(ctx, req.Category)
		if err != nil {
			return notFound(err, "Category not found", "Error updating blog")
		}
		blog.CategoryID = category.ID
	}
	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Slug != "" {
		blog.Slug = req.Slug
	}
	if req.BlogContent != "" {
		blog.BlogContent = req.BlogContent
	}
	if req.FeaturedImage != "" {
		blog.FeaturedImage = req.FeaturedImage
	}

	if err := h.blogRepository.UpdateBlog(ctx, blog); err != nil {
		return httpError(err, "Error updating blog")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Blog updated successfully.", "blog": blog})
}

// DeleteBlog deletes a blog together with its comments and likes
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	blog, err := h.blogRepository.GetBlogByID(ctx, c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error deleting blog")
	}
	if blog.AuthorID != currentUserID && !isAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this blog")
	}

	ids := []primitive.ObjectID{blog.ID}
	if _, err := h.commentRepository.DeleteByBlogs(ctx, ids); err != nil {
		return httpError(err, "Error deleting blog")
	}
	if _, err := h.likeRepository.DeleteByBlogs(ctx, ids); err != nil {
		return httpError(err, "Error deleting blog")
	}
	if err := h.blogRepository.DeleteBlog(ctx, blog.ID); err != nil {
		return notFound(err, "Blog not found", "Error deleting blog")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Blog deleted successfully."})
}

func (h *BlogHandler) withAuthors(ctx context.Context, blogs []models.Blog) ([]models.BlogView, error) {
	ids := make([]uint, len(blogs))
	for i, b := range blogs {
		ids[i] = b.AuthorID
	}
	authors, err := h.users.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.BlogView, len(blogs))
	for i, b := range blogs {
		views[i] = models.BlogView{Blog: b, Author: authors[b.AuthorID]}
	}
	return views, nil
}
