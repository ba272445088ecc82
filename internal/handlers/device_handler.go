package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
)

// DeviceHandler handles HTTP requests related to push device registration
type DeviceHandler struct {
	deviceRepository repositories.DeviceRepository
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(deviceRepo repositories.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{deviceRepository: deviceRepo}
}

// RegisterDeviceRoutes registers device-related routes
func (h *DeviceHandler) RegisterDeviceRoutes(g *echo.Group) {
	g.POST("/devices", h.RegisterDevice)
	g.DELETE("/devices/:token", h.UnregisterDevice)
}

// RegisterDevice registers (or reassigns) an FCM token for the caller
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	device := &models.Device{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := h.deviceRepository.Upsert(c.Request().Context(), device); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, device)
}

// UnregisterDevice removes a push token, typically on logout
func (h *DeviceHandler) UnregisterDevice(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return err
	}

	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing token")
	}
	if err := h.deviceRepository.DeleteToken(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
