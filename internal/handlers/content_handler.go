package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
)

// ContentHandler handles HTTP requests for walls, artworks and posts
type ContentHandler struct {
	content     *services.ContentService
	wallRepo    repositories.WallRepository
	artworkRepo repositories.ArtworkRepository
	postRepo    repositories.PostRepository
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	content *services.ContentService,
	wallRepo repositories.WallRepository,
	artworkRepo repositories.ArtworkRepository,
	postRepo repositories.PostRepository,
) *ContentHandler {
	return &ContentHandler{
		content:     content,
		wallRepo:    wallRepo,
		artworkRepo: artworkRepo,
		postRepo:    postRepo,
	}
}

// RegisterContentRoutes registers wall, artwork and post routes
func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.POST("/walls", h.CreateWall)
	g.GET("/walls/:id", h.GetWall)
	g.POST("/artworks", h.CreateArtwork)
	g.GET("/artworks/:id", h.GetArtwork)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreateWall submits a new wall
func (h *ContentHandler) CreateWall(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateWallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	wall, err := h.content.CreateWall(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, wall)
}

// GetWall retrieves a wall by ID
func (h *ContentHandler) GetWall(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	wall, err := h.wallRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(err, "Wall not found")
	}
	return c.JSON(http.StatusOK, wall)
}

// CreateArtwork publishes a new artwork
func (h *ContentHandler) CreateArtwork(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateArtworkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	artwork, err := h.content.CreateArtwork(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, artwork)
}

// GetArtwork retrieves an artwork by ID
func (h *ContentHandler) GetArtwork(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	artwork, err := h.artworkRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(err, "Artwork not found")
	}
	return c.JSON(http.StatusOK, artwork)
}

// CreatePost creates a new community post
func (h *ContentHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.content.CreatePost(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *ContentHandler) GetPost(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(err, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func notFoundOr500(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
