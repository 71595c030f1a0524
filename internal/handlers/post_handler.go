package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crestline/huddle/backend/internal/broadcast"
	"github.com/crestline/huddle/backend/internal/metrics"
	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// postsPerPage defines the number of posts on a single listing page.
const postsPerPage = 10

// PostCache caches the most recent posts of a channel. Failures degrade to
// database reads.
type PostCache interface {
	ListPosts(ctx context.Context, channelID uint) ([]models.Post, error)
	InsertPost(ctx context.Context, post models.Post) error
}

// PostHandler handles HTTP requests related to posts.
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	channelRepository repositories.ChannelRepository
	userRepository    repositories.UserRepository
	viewingRepository repositories.ViewingRepository
	cache             PostCache
	notifier          broadcast.Notifier
	logger            *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	channelRepo repositories.ChannelRepository,
	userRepo repositories.UserRepository,
	viewingRepo repositories.ViewingRepository,
	cache PostCache,
	notifier broadcast.Notifier,
	logger *slog.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		channelRepository: channelRepo,
		userRepository:    userRepo,
		viewingRepository: viewingRepo,
		cache:             cache,
		notifier:          notifier,
		logger:            logger,
	}
}

// RegisterPostRoutes registers post-related routes.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/channels/:channel_id/posts", h.ListPosts)
	g.GET("/channels/:channel_id/posts/latest", h.LatestPosts)
	g.POST("/channels/:channel_id/posts", h.CreatePost)
	g.PUT("/channels/:channel_id/posts/:post_id", h.UpdatePost)
	g.DELETE("/channels/:channel_id/posts/:post_id", h.DeletePost)
}

// ListPosts returns one ascending page of a channel's posts together with a
// summary of the users who commented on each post. Visiting the listing is
// what counts as viewing the channel: for members it upserts the last-visit
// marker and remembers the channel as the user's most recently viewed.
func (h *PostHandler) ListPosts(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channel_id")
	if err != nil {
		return err
	}
	channel, err := h.channelRepository.GetChannelByID(ctx, channelID)
	if err != nil {
		return httpError(err, "Channel")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	posts, err := h.postRepository.ListPosts(ctx, channelID, page, postsPerPage)
	if err != nil {
		return httpError(err, "Posts")
	}

	postIDs := make([]uint, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}
	commenters, err := h.commentRepository.DistinctCommenters(ctx, postIDs)
	if err != nil {
		return httpError(err, "Commenters")
	}
	postCommenters := make(map[uint][]models.User, len(commenters))
	for postID, userIDs := range commenters {
		users, err := h.userRepository.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return httpError(err, "Commenters")
		}
		postCommenters[postID] = users
	}

	isMember, err := h.channelRepository.IsMember(ctx, channelID, userID)
	if err != nil {
		return httpError(err, "Membership")
	}
	if isMember {
		if _, err := h.viewingRepository.RecordVisit(ctx, userID, channelID); err != nil {
			return httpError(err, "Visit")
		}
		if err := h.userRepository.SetLastViewedChannel(ctx, userID, channelID); err != nil {
			return httpError(err, "User")
		}
	}

	total, err := h.postRepository.CountPosts(ctx, channelID)
	if err != nil {
		return httpError(err, "Posts")
	}
	var nextPage *int
	if int64(page*postsPerPage) < total {
		n := page + 1
		nextPage = &n
	}

	return c.JSON(http.StatusOK, echo.Map{
		"channel":          channel,
		"posts":            posts,
		"channel_users":    channel.Users,
		"next_page_number": nextPage,
		"post_commenters":  postCommenters,
	})
}

// LatestPosts returns the most recent posts of a channel, served from the
// cache when it is warm and from the database otherwise.
func (h *PostHandler) LatestPosts(c echo.Context) error {
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channel_id")
	if err != nil {
		return err
	}
	if _, err := h.channelRepository.GetChannelByID(ctx, channelID); err != nil {
		return httpError(err, "Channel")
	}

	posts, err := h.cache.ListPosts(ctx, channelID)
	if err != nil {
		h.logger.Warn("Could not list cached posts", "channel_id", channelID, "error", err.Error())
		posts = nil
	}
	if len(posts) == 0 {
		total, err := h.postRepository.CountPosts(ctx, channelID)
		if err != nil {
			return httpError(err, "Posts")
		}
		lastPage := int((total + postsPerPage - 1) / postsPerPage)
		posts, err = h.postRepository.ListPosts(ctx, channelID, lastPage, postsPerPage)
		if err != nil {
			return httpError(err, "Posts")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// CreatePost creates a new post in a channel. The ordered image URL list is
// stored joined into a single value; an empty list stores the empty string.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	channelID, err := pathID(c, "channel_id")
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		ChannelID:   channelID,
		CreatedByID: userID,
		Body:        req.Body,
		Images:      models.JoinImageURLs(req.ImageURLs),
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return httpError(err, "Channel")
	}
	metrics.PostsCreated.Inc()

	if err := h.cache.InsertPost(ctx, *post); err != nil {
		h.logger.Error("Could not cache post", "post_id", post.ID, "error", err.Error())
	}
	h.notifier.PostCreated(ctx, post)

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost edits an existing post's body and image list. Only the creator
// may edit; the channel association never changes.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err, "Post")
	}
	if post.CreatedByID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the creator can edit a post")
	}

	updated, err := h.postRepository.UpdatePost(ctx, postID, req.Body, models.JoinImageURLs(req.ImageURLs))
	if err != nil {
		return httpError(err, "Post")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"post":   updated.Body,
		"images": updated.Images,
	})
}

// DeletePost removes a post along with its comments and reactions. Only the
// creator may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err, "Post")
	}
	if post.CreatedByID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the creator can delete a post")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return httpError(err, "Post")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}
