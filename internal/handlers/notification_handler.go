package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, auth)
	g.GET("/notifications/unread-count", h.GetUnreadCount, auth)
	g.PATCH("/notifications/read-all", h.MarkAllAsRead, auth)
	g.PATCH("/notifications/:id/read", h.MarkAsRead, auth)
}

// GetNotifications returns the caller's latest notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	views, err := h.notifications.List(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err, "Error fetching notifications")
	}
	return c.JSON(http.StatusOK, views)
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.UnreadCount(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err, "Error counting notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	notification, err := h.notifications.MarkRead(c.Request().Context(), currentUserID, c.Param("id"))
	if err != nil {
		return notFound(err, "Notification not found", "Error marking notification as read")
	}
	return c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkAllRead(c.Request().Context(), currentUserID); err != nil {
		return httpError(err, "Error marking notifications as read")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
