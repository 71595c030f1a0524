package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/crestline/huddle/backend/internal/models"
)

// Interface fakes with overridable func fields. Methods return zero values
// when a field is left nil so tests only wire the calls they care about.

type fakeUserRepo struct {
	T             *testing.T
	getUserByID   func(t *testing.T, id uint) (*models.User, error)
	getUsersByIDs func(t *testing.T, ids []uint) ([]models.User, error)
	setLastViewed func(t *testing.T, userID, channelID uint) error
	createUser    func(t *testing.T, user *models.User) error
	getUsers      func(t *testing.T) ([]models.User, error)
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if f.createUser == nil {
		return nil
	}
	return f.createUser(f.T, user)
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if f.getUserByID == nil {
		return &models.User{ID: id, Username: "user"}, nil
	}
	return f.getUserByID(f.T, id)
}

func (f *fakeUserRepo) GetUsers(_ context.Context) ([]models.User, error) {
	if f.getUsers == nil {
		return nil, nil
	}
	return f.getUsers(f.T)
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	if f.getUsersByIDs == nil {
		return nil, nil
	}
	return f.getUsersByIDs(f.T, ids)
}

func (f *fakeUserRepo) SetLastViewedChannel(_ context.Context, userID, channelID uint) error {
	if f.setLastViewed == nil {
		return nil
	}
	return f.setLastViewed(f.T, userID, channelID)
}

type fakeChannelRepo struct {
	T                *testing.T
	createChannel    func(t *testing.T, channel *models.Channel) error
	getChannelByID   func(t *testing.T, id uint) (*models.Channel, error)
	getChannels      func(t *testing.T) ([]models.Channel, error)
	addUserToChannel func(t *testing.T, channelID, userID uint) error
	isMember         func(t *testing.T, channelID, userID uint) (bool, error)
	deleteChannel    func(t *testing.T, id uint) error
}

func (f *fakeChannelRepo) CreateChannel(_ context.Context, channel *models.Channel) error {
	if f.createChannel == nil {
		channel.ID = 1
		return nil
	}
	return f.createChannel(f.T, channel)
}

func (f *fakeChannelRepo) GetChannelByID(_ context.Context, id uint) (*models.Channel, error) {
	if f.getChannelByID == nil {
		return &models.Channel{ID: id, Name: "general"}, nil
	}
	return f.getChannelByID(f.T, id)
}

func (f *fakeChannelRepo) GetChannels(_ context.Context) ([]models.Channel, error) {
	if f.getChannels == nil {
		return nil, nil
	}
	return f.getChannels(f.T)
}

func (f *fakeChannelRepo) AddUserToChannel(_ context.Context, channelID, userID uint) error {
	if f.addUserToChannel == nil {
		return nil
	}
	return f.addUserToChannel(f.T, channelID, userID)
}

func (f *fakeChannelRepo) IsMember(_ context.Context, channelID, userID uint) (bool, error) {
	if f.isMember == nil {
		return false, nil
	}
	return f.isMember(f.T, channelID, userID)
}

func (f *fakeChannelRepo) DeleteChannel(_ context.Context, id uint) error {
	if f.deleteChannel == nil {
		return nil
	}
	return f.deleteChannel(f.T, id)
}

type fakeViewingRepo struct {
	T              *testing.T
	recordVisit    func(t *testing.T, userID, channelID uint) (time.Time, error)
	lastVisit      func(t *testing.T, userID, channelID uint) (time.Time, bool, error)
	markersForUser func(t *testing.T, userID uint, channelIDs []uint) (map[uint]time.Time, error)
}

func (f *fakeViewingRepo) RecordVisit(_ context.Context, userID, channelID uint) (time.Time, error) {
	if f.recordVisit == nil {
		return time.Time{}, nil
	}
	return f.recordVisit(f.T, userID, channelID)
}

func (f *fakeViewingRepo) LastVisit(_ context.Context, userID, channelID uint) (time.Time, bool, error) {
	if f.lastVisit == nil {
		return time.Time{}, false, nil
	}
	return f.lastVisit(f.T, userID, channelID)
}

func (f *fakeViewingRepo) MarkersForUser(_ context.Context, userID uint, channelIDs []uint) (map[uint]time.Time, error) {
	if f.markersForUser == nil {
		return map[uint]time.Time{}, nil
	}
	return f.markersForUser(f.T, userID, channelIDs)
}

type fakePostRepo struct {
	T           *testing.T
	createPost  func(t *testing.T, post *models.Post) error
	getPostByID func(t *testing.T, id uint) (*models.Post, error)
	listPosts   func(t *testing.T, channelID uint, page, perPage int) ([]models.Post, error)
	countPosts  func(t *testing.T, channelID uint) (int64, error)
	updatePost  func(t *testing.T, id uint, body, images string) (*models.Post, error)
	deletePost  func(t *testing.T, id uint) error
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if f.createPost == nil {
		post.ID = 1
		return nil
	}
	return f.createPost(f.T, post)
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	if f.getPostByID == nil {
		return &models.Post{ID: id}, nil
	}
	return f.getPostByID(f.T, id)
}

func (f *fakePostRepo) ListPosts(_ context.Context, channelID uint, page, perPage int) ([]models.Post, error) {
	if f.listPosts == nil {
		return nil, nil
	}
	return f.listPosts(f.T, channelID, page, perPage)
}

func (f *fakePostRepo) CountPosts(_ context.Context, channelID uint) (int64, error) {
	if f.countPosts == nil {
		return 0, nil
	}
	return f.countPosts(f.T, channelID)
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id uint, body, images string) (*models.Post, error) {
	if f.updatePost == nil {
		return &models.Post{ID: id, Body: body, Images: images}, nil
	}
	return f.updatePost(f.T, id, body, images)
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint) error {
	if f.deletePost == nil {
		return nil
	}
	return f.deletePost(f.T, id)
}

type fakeCommentRepo struct {
	T                  *testing.T
	createComment      func(t *testing.T, comment *models.Comment) error
	listComments       func(t *testing.T, postID uint) ([]models.Comment, error)
	distinctCommenters func(t *testing.T, postIDs []uint) (map[uint][]uint, error)
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	if f.createComment == nil {
		comment.ID = 1
		return nil
	}
	return f.createComment(f.T, comment)
}

func (f *fakeCommentRepo) ListComments(_ context.Context, postID uint) ([]models.Comment, error) {
	if f.listComments == nil {
		return nil, nil
	}
	return f.listComments(f.T, postID)
}

func (f *fakeCommentRepo) DistinctCommenters(_ context.Context, postIDs []uint) (map[uint][]uint, error) {
	if f.distinctCommenters == nil {
		return map[uint][]uint{}, nil
	}
	return f.distinctCommenters(f.T, postIDs)
}

type fakeReactionRepo struct {
	T                  *testing.T
	togglePostReaction func(t *testing.T, postID uint, emoji string, userID uint) (string, error)
	attachCommentEmoji func(t *testing.T, commentID uint, emoji string, userID uint) error
}

func (f *fakeReactionRepo) TogglePostReaction(_ context.Context, postID uint, emoji string, userID uint) (string, error) {
	return f.togglePostReaction(f.T, postID, emoji, userID)
}

func (f *fakeReactionRepo) AttachCommentEmoji(_ context.Context, commentID uint, emoji string, userID uint) error {
	return f.attachCommentEmoji(f.T, commentID, emoji, userID)
}

type fakeImageRepo struct {
	T            *testing.T
	storeImage   func(t *testing.T, data []byte, contentType string) (*models.Image, error)
	getImageByID func(t *testing.T, id string) (*models.Image, error)
}

func (f *fakeImageRepo) StoreImage(_ context.Context, data []byte, contentType string) (*models.Image, error) {
	return f.storeImage(f.T, data, contentType)
}

func (f *fakeImageRepo) GetImageByID(_ context.Context, id string) (*models.Image, error) {
	return f.getImageByID(f.T, id)
}

type fakeCache struct {
	T          *testing.T
	listPosts  func(t *testing.T, channelID uint) ([]models.Post, error)
	insertPost func(t *testing.T, post models.Post) error
}

func (f *fakeCache) ListPosts(_ context.Context, channelID uint) ([]models.Post, error) {
	if f.listPosts == nil {
		return nil, nil
	}
	return f.listPosts(f.T, channelID)
}

func (f *fakeCache) InsertPost(_ context.Context, post models.Post) error {
	if f.insertPost == nil {
		return nil
	}
	return f.insertPost(f.T, post)
}

// recordingNotifier captures broadcast events for assertions.
type recordingNotifier struct {
	posts    []models.Post
	comments []models.Comment
}

func (n *recordingNotifier) PostCreated(_ context.Context, post *models.Post) {
	n.posts = append(n.posts, *post)
}

func (n *recordingNotifier) CommentCreated(_ context.Context, comment *models.Comment) {
	n.comments = append(n.comments, *comment)
}
