package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
)

// getUserIDFromContext extracts the authenticated user's ID placed there by the
// auth middleware.
func getUserIDFromContext(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid user claims")
	}
	return claims.UserID, nil
}

// parseEntityRef reads the :entity_type/:entity_id path pair into a tagged ref
func parseEntityRef(c echo.Context) (models.EntityRef, error) {
	t, ok := models.ParseEntityType(c.Param("entity_type"))
	if !ok {
		return models.EntityRef{}, echo.NewHTTPError(http.StatusBadRequest, "Unknown entity type")
	}
	id, err := parseUintParam(c, "entity_id")
	if err != nil {
		return models.EntityRef{}, err
	}
	return models.EntityRef{Type: t, ID: id}, nil
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// serviceError translates the service-layer error taxonomy into HTTP responses
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
