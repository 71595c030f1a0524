package handlers

import (
	"net/http"
	"strconv"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ChannelHandler handles HTTP requests related to channels and membership.
type ChannelHandler struct {
	channelRepository repositories.ChannelRepository
	userRepository    repositories.UserRepository
	viewingRepository repositories.ViewingRepository
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(channelRepo repositories.ChannelRepository, userRepo repositories.UserRepository, viewingRepo repositories.ViewingRepository) *ChannelHandler {
	return &ChannelHandler{
		channelRepository: channelRepo,
		userRepository:    userRepo,
		viewingRepository: viewingRepo,
	}
}

// RegisterChannelRoutes registers channel-related routes.
func (h *ChannelHandler) RegisterChannelRoutes(g *echo.Group) {
	g.GET("/channels", h.ListChannels)
	g.POST("/channels", h.CreateChannel)
	g.POST("/channels/:channel_id/users/:user_id", h.AddUserToChannel)
	g.DELETE("/channels/:channel_id", h.DeleteChannel)
}

// ListChannels returns every channel plus, for channels the acting user
// belongs to, the user's last-visit marker (created lazily on first sight).
func (h *ChannelHandler) ListChannels(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	channels, err := h.channelRepository.GetChannels(ctx)
	if err != nil {
		return httpError(err, "Channels")
	}

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return httpError(err, "User")
	}

	var memberChannelIDs []uint
	for _, channel := range channels {
		for _, member := range channel.Users {
			if member.ID == userID {
				memberChannelIDs = append(memberChannelIDs, channel.ID)
				break
			}
		}
	}

	markers, err := h.viewingRepository.MarkersForUser(ctx, userID, memberChannelIDs)
	if err != nil {
		return httpError(err, "Viewing markers")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"channels":               channels,
		"last_viewed_channel_id": user.LastViewedChannelID,
		"user_statuses":          markers,
	})
}

// CreateChannel creates a new channel with the acting user as its first
// member.
func (h *ChannelHandler) CreateChannel(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	var req models.CreateChannelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	channel := &models.Channel{Name: req.Name}
	if err := h.channelRepository.CreateChannel(ctx, channel); err != nil {
		return httpError(err, "Channel")
	}
	if err := h.channelRepository.AddUserToChannel(ctx, channel.ID, userID); err != nil {
		return httpError(err, "Channel or user")
	}

	return c.JSON(http.StatusCreated, channel)
}

// AddUserToChannel adds a user to the channel member set. Adding an
// existing member succeeds without change.
func (h *ChannelHandler) AddUserToChannel(c echo.Context) error {
	channelID, err := pathID(c, "channel_id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.channelRepository.AddUserToChannel(c.Request().Context(), channelID, userID); err != nil {
		return httpError(err, "Channel or user")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// DeleteChannel removes a channel, its membership rows and, through the
// declared cascades, its posts. Restricted to members.
func (h *ChannelHandler) DeleteChannel(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channel_id")
	if err != nil {
		return err
	}

	isMember, err := h.channelRepository.IsMember(ctx, channelID, userID)
	if err != nil {
		return httpError(err, "Membership")
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "Only members can delete a channel")
	}

	if err := h.channelRepository.DeleteChannel(ctx, channelID); err != nil {
		return httpError(err, "Channel")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
