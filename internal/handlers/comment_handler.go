package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
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
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:entity_type/:entity_id/comments", h.CreateComment)
	g.GET("/:entity_type/:entity_id/comments", h.GetComments)
}

// CreateComment creates a new comment (or reply) on the target entity
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	ref, err := parseEntityRef(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.engagement.AddComment(c.Request().Context(), userID, ref, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists the root comments on the target entity with their replies
func (h *CommentHandler) GetComments(c echo.Context) error {
	ref, err := parseEntityRef(c)
	if err != nil {
		return err
	}
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	threads, total, err := h.engagement.ListComments(c.Request().Context(), ref, page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"comments": threads,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}
