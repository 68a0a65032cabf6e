package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	engagement *services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement *services.EngagementService) *CommentHandler {
	return &CommentHandler{engagement: engagement}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/blogs/:id/comments", h.AddComment, auth)
	g.GET("/blogs/:id/comments", h.GetCommentsForBlog)
	g.GET("/blogs/:id/comments/count", h.GetCommentCount)
	g.GET("/comments", h.GetAllComments, auth)
	g.DELETE("/comments/:id", h.DeleteComment, auth)
}

// AddComment adds a comment to a blog
func (h *CommentHandler) AddComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.engagement.AddComment(c.Request().Context(), currentUserID, c.Param("id"), req.Comment)
	if err != nil {
		return notFound(err, "Blog not found", "Error adding comment")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Comment submitted.", "comment": comment})
}

// GetCommentsForBlog lists the comments of a blog, newest first
func (h *CommentHandler) GetCommentsForBlog(c echo.Context) error {
	comments, err := h.engagement.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error fetching comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}

// GetCommentCount returns how many comments a blog has
func (h *CommentHandler) GetCommentCount(c echo.Context) error {
	count, err := h.engagement.CommentCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error counting comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "commentCount": count})
}

// GetAllComments lists every comment for admins and the caller's own otherwise
func (h *CommentHandler) GetAllComments(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	comments, err := h.engagement.ListAllComments(c.Request().Context(), currentUserID, isAdmin(c))
	if err != nil {
		return httpError(err, "Error fetching comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}

// DeleteComment removes a comment owned by the caller, or any comment for admins
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.engagement.DeleteComment(c.Request().Context(), currentUserID, isAdmin(c), c.Param("id")); err != nil {
		return notFound(err, "Comment not found", "Error deleting comment")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Comment deleted."})
}
