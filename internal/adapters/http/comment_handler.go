package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	commentService ports.CommentService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService ports.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// CreateComment godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Param request body ports.CreateCommentRequest true "Comment data"
// @Success 201 {object} entities.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req ports.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), req)
	if err != nil {
		return serviceError(h.logger, "Create comment", err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body ports.UpdateCommentRequest true "Comment data"
// @Success 200 {object} entities.Comment
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req ports.UpdateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(h.logger, "Update comment", err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} entities.Comment
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.commentService.DeleteComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Delete comment", err)
	}
	return c.JSON(http.StatusOK, comment)
}
