package handlers

import (
	"net/http"
	"strconv"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
	log         *logger.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log.With("handler", "posts")}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), actor, &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists posts newest first; skip and limit are optional, a missing limit returns all.
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}

	posts, err := h.postService.ListPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), c.Param("id"), actor, &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), actor); err != nil {
		return httpError(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	post, err := h.postService.LikePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": post.ID, "likes": post.Likes})
}
