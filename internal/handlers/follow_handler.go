package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	relationships *services.RelationshipService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(relationships *services.RelationshipService) *FollowHandler {
	return &FollowHandler{relationships: relationships}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:user_id/follow", h.Follow)
	g.DELETE("/users/:user_id/follow", h.Unfollow)
	g.GET("/users/:user_id/follow", h.GetStatus)
	g.GET("/users/:user_id/followers", h.GetFollowers)
	g.GET("/users/:user_id/following", h.GetFollowing)
}

// Follow makes the caller follow the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.relationships.Follow(c.Request().Context(), userID, targetID); err != nil {
		return serviceError(err)
	}

	status, err := h.relationships.Status(c.Request().Context(), userID, targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, status)
}

// Unfollow removes the caller's follow on the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.relationships.Unfollow(c.Request().Context(), userID, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStatus reports the caller's relationship towards the target user
func (h *FollowHandler) GetStatus(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	status, err := h.relationships.Status(c.Request().Context(), userID, targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// GetFollowers lists the users following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	followers, err := h.relationships.Followers(c.Request().Context(), targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"followers": followers})
}

// GetFollowing lists the users the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := parseUintParam(c, "user_id")
	if err != nil {
		return err
	}

	following, err := h.relationships.Following(c.Request().Context(), targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"following": following})
}
