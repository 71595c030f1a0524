package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crestline/huddle/backend/internal/broadcast"
	"github.com/crestline/huddle/backend/internal/metrics"
	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	notifier          broadcast.Notifier
	logger            *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifier broadcast.Notifier, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		notifier:          notifier,
		logger:            logger,
	}
}

// RegisterCommentRoutes registers comment-related routes.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.ListComments)
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// ListComments returns the post's comments in ascending creation order.
func (h *CommentHandler) ListComments(c echo.Context) error {
	ctx := c.Request().Context()

	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err, "Post")
	}

	comments, err := h.commentRepository.ListComments(ctx, postID)
	if err != nil {
		return httpError(err, "Comments")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreateComment creates a new comment on a post.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := &models.Comment{
		PostID:      postID,
		CreatedByID: userID,
		Body:        req.Body,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return httpError(err, "Post")
	}
	metrics.CommentsCreated.Inc()
	h.notifier.CommentCreated(ctx, comment)

	return c.JSON(http.StatusCreated, comment)
}
