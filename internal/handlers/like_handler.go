package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes; the status route works
// anonymously but reports the caller's own like when a session exists.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, auth, optionalAuth echo.MiddlewareFunc) {
	g.POST("/blogs/:id/like", h.ToggleLike, auth)
	g.GET("/blogs/:id/likes", h.GetLikeStatus, optionalAuth)
}

// ToggleLike likes the blog or removes an existing like
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	state, err := h.engagement.ToggleLike(c.Request().Context(), currentUserID, c.Param("id"))
	if err != nil {
		return notFound(err, "Blog not found", "Error toggling like")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "likecount": state.LikeCount, "isUserliked": state.IsUserLiked})
}

// GetLikeStatus returns the like count of a blog
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	state, err := h.engagement.LikeStatus(c.Request().Context(), c.Param("id"), getUserIDFromContext(c))
	if err != nil {
		return notFound(err, "Blog not found", "Error fetching likes")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "likecount": state.LikeCount, "isUserliked": state.IsUserLiked})
}
