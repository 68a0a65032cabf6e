package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
}

func NewCategoryHandler(categoryRepo repositories.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepository: categoryRepo}
}

// RegisterCategoryRoutes registers category routes; writes are admin only
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/categories", h.GetCategories)
	g.POST("/categories", h.CreateCategory, auth, middleware.AdminOnly)
	g.DELETE("/categories/:id", h.DeleteCategory, auth, middleware.AdminOnly)
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryRepository.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err, "Error fetching categories")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "categories": categories})
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.categoryRepository.CreateCategory(c.Request().Context(), category); err != nil {
		return httpError(err, "Error creating category")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Category added successfully.", "category": category})
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryRepository.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return notFound(err, "Category not found", "Error deleting category")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category deleted successfully."})
}
