package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
)

// PreferenceHandler handles HTTP requests related to notification preferences
type PreferenceHandler struct {
	preferences *services.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferences *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// RegisterPreferenceRoutes registers preference-related routes
func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.GET("/notification-preferences", h.GetPreferences)
	g.PUT("/notification-preferences", h.UpdatePreferences)
}

// GetPreferences returns the caller's notification preferences, creating the
// default-enabled row on first access.
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	pref, err := h.preferences.Get(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreferences applies a partial patch to the caller's preferences
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	pref, err := h.preferences.Update(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pref)
}
