package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// dashboardMonths is how far back the signup trend reaches.
const dashboardMonths = 6

type AdminHandler struct {
	userRepository  repositories.UserRepository
	statsRepository repositories.StatsRepository
	accounts        *services.AccountService
}

func NewAdminHandler(userRepo repositories.UserRepository, statsRepo repositories.StatsRepository, accounts *services.AccountService) *AdminHandler {
	return &AdminHandler{userRepository: userRepo, statsRepository: statsRepo, accounts: accounts}
}

func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/users", h.GetUsers, auth, middleware.AdminOnly)
	g.DELETE("/admin/users/:id", h.DeleteUser, auth, middleware.AdminOnly)
	g.GET("/admin/dashboard", h.GetDashboard, auth, middleware.AdminOnly)
}

// GetUsers lists every non-admin account, newest first
func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err, "Error fetching users")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": users})
}

// DeleteUser bans an account and removes everything it owns
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.accounts.DeleteAccount(c.Request().Context(), getUserIDFromContext(c), uint(id)); err != nil {
		return notFound(err, "User not found", "Error deleting user")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User and all associated data deleted successfully."})
}

// GetDashboard aggregates the reporting figures of the admin dashboard
func (h *AdminHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.statsRepository.Counts(ctx)
	if err != nil {
		return httpError(err, "Error fetching dashboard data")
	}
	categories, err := h.statsRepository.BlogsPerCategory(ctx)
	if err != nil {
		return httpError(err, "Error fetching dashboard data")
	}

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(dashboardMonths - 1), 0)
	trend, err := h.statsRepository.SignupsPerMonth(ctx, since)
	if err != nil {
		return httpError(err, "Error fetching dashboard data")
	}

	return c.JSON(http.StatusOK, models.Dashboard{
		Stats:         stats,
		CategoryData:  categories,
		UserTrendData: trend,
	})
}
