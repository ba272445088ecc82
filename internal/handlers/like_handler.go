package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/:entity_type/:entity_id/like", h.ToggleLike)
	g.GET("/:entity_type/:entity_id/like", h.GetLikeState)
}

// ToggleLike flips the caller's like on the target entity
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	ref, err := parseEntityRef(c)
	if err != nil {
		return err
	}

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	liked, count, err := h.engagement.ToggleLike(c.Request().Context(), userID, ref, models.ReactionType(req.ReactionType))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":       liked,
		"likes_count": count,
	})
}

// GetLikeState reports whether the caller liked the entity and its likes count
func (h *LikeHandler) GetLikeState(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	ref, err := parseEntityRef(c)
	if err != nil {
		return err
	}

	liked, count, err := h.engagement.LikeState(c.Request().Context(), userID, ref)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":       liked,
		"likes_count": count,
	})
}
