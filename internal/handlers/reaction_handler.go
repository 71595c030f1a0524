package handlers

import (
	"net/http"

	"github.com/crestline/huddle/backend/internal/metrics"
	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests for emoji reactions. Post and
// comment reactions behave differently and are kept as separate routes:
// post reactions toggle per user, comment reactions only attach.
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(reactionRepo repositories.ReactionRepository) *ReactionHandler {
	return &ReactionHandler{reactionRepository: reactionRepo}
}

// RegisterReactionRoutes registers reaction-related routes.
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/reactions", h.TogglePostReaction)
	g.POST("/comments/:id/reactions", h.AttachCommentEmoji)
}

// TogglePostReaction flips the acting user's membership in the post's
// reaction set for the given emoji and reports the transition taken.
func (h *ReactionHandler) TogglePostReaction(c echo.Context) error {
	userID := currentUserID(c)

	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.reactionRepository.TogglePostReaction(c.Request().Context(), postID, req.Emoji, userID)
	if err != nil {
		return httpError(err, "Post")
	}
	metrics.ReactionToggles.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, echo.Map{"status": result})
}

// AttachCommentEmoji attaches the acting user's emoji to a comment.
// Repeating the call is a no-op success; there is no removal path.
func (h *ReactionHandler) AttachCommentEmoji(c echo.Context) error {
	userID := currentUserID(c)

	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reactionRepository.AttachCommentEmoji(c.Request().Context(), commentID, req.Emoji, userID); err != nil {
		return httpError(err, "Comment")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}
