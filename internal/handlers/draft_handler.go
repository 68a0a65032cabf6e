package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftHandler serves the single working draft each author keeps.
type DraftHandler struct {
	draftRepository repositories.DraftRepository
}

func NewDraftHandler(draftRepo repositories.DraftRepository) *DraftHandler {
	return &DraftHandler{draftRepository: draftRepo}
}

func (h *DraftHandler) RegisterDraftRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/drafts", h.GetDraft, auth)
	g.POST("/drafts", h.SaveDraft, auth)
	g.DELETE("/drafts", h.DeleteDraft, auth)
}

// GetDraft returns the caller's draft, or null when there is none
func (h *DraftHandler) GetDraft(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	draft, err := h.draftRepository.GetDraftByAuthor(c.Request().Context(), currentUserID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return httpError(err, "Error fetching draft")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "draft": draft})
}

// SaveDraft creates the caller's draft or updates the fields sent
func (h *DraftHandler) SaveDraft(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.SaveDraftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	draft, err := h.draftRepository.GetDraftByAuthor(ctx, currentUserID)
	if errors.Is(err, repositories.ErrNotFound) {
		draft = &models.Draft{AuthorID: currentUserID}
	} else if err != nil {
		return httpError(err, "Error saving draft")
	}

	if req.Category != "" {
		id, err := primitive.ObjectIDFromHex(req.Category)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID")
		}
		draft.CategoryID = &id
	}
	if req.Title != "" {
		draft.Title = req.Title
	}
	if req.Slug != "" {
		draft.Slug = req.Slug
	}
	if req.BlogContent != "" {
		draft.BlogContent = req.BlogContent
	}
	if req.FeaturedImage != "" {
		draft.FeaturedImage = req.FeaturedImage
	}

	saved, err := h.draftRepository.SaveDraft(ctx, draft)
	if err != nil {
		return httpError(err, "Error saving draft")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Draft saved successfully", "draft": saved})
}

// DeleteDraft discards every draft of the caller
func (h *DraftHandler) DeleteDraft(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	if _, err := h.draftRepository.DeleteDraftsByAuthor(c.Request().Context(), currentUserID); err != nil {
		return httpError(err, "Error deleting draft")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Draft deleted successfully"})
}
