package handlers

import (
	"net/http"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comments and replies nested under a post
type CommentHandler struct {
	postService *services.PostService
	log         *logger.Logger
}

func NewCommentHandler(postService *services.PostService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{postService: postService, log: log.With("handler", "comments")}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.PUT("/posts/:id/comments/:commentId", h.UpdateComment)
	g.DELETE("/posts/:id/comments/:commentId", h.DeleteComment)
	g.POST("/posts/:id/comments/:commentId/replies", h.CreateReply)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.postService.AddComment(c.Request().Context(), c.Param("id"), actor, req.Content)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits a comment's text (author only)
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.postService.EditComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), actor, req.Content)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment (author or admin)
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), actor); err != nil {
		return httpError(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) CreateReply(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reply, err := h.postService.AddReply(c.Request().Context(), c.Param("id"), c.Param("commentId"), actor, req.Content)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, reply)
}
