package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

func TestChannelHandler_ListChannels(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	visit := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	channelRepo := &fakeChannelRepo{
		T: t,
		getChannels: func(t *testing.T) ([]models.Channel, error) {
			return []models.Channel{
				{ID: 1, Name: "general", CreatedAt: created, Users: []models.User{{ID: 3, Username: "ana", CreatedAt: created}}},
				{ID: 2, Name: "random", CreatedAt: created},
			}, nil
		},
	}
	userRepo := &fakeUserRepo{
		T: t,
		getUserByID: func(t *testing.T, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "ana", CreatedAt: created, LastViewedChannelID: 1}, nil
		},
	}
	viewingRepo := &fakeViewingRepo{
		T: t,
		markersForUser: func(t *testing.T, userID uint, channelIDs []uint) (map[uint]time.Time, error) {
			// Only the member channel gets a marker.
			if len(channelIDs) != 1 || channelIDs[0] != 1 {
				t.Errorf("Got marker channels %v, want [1]", channelIDs)
			}
			return map[uint]time.Time{1: visit}, nil
		},
	}

	h := NewChannelHandler(channelRepo, userRepo, viewingRepo)
	srv := newTestServer(t, func(g *echo.Group) { h.RegisterChannelRoutes(g) })

	resp := doRequest(t, "GET", srv.URL+"/api/channels", "3", "")
	checkStatus(t, resp.StatusCode, 200)
	checkBody(t, resp, `{
		"channels": [
			{"id": 1, "name": "general", "created_at": "2024-01-01T00:00:00Z", "users": [{"id": 3, "username": "ana", "created_at": "2024-01-01T00:00:00Z"}]},
			{"id": 2, "name": "random", "created_at": "2024-01-01T00:00:00Z"}
		],
		"last_viewed_channel_id": 1,
		"user_statuses": {"1": "2024-02-01T12:00:00Z"}
	}`)
}

func TestChannelHandler_AddUserToChannel(t *testing.T) {
	// Stateful membership fake: the handler must treat re-adding as a
	// success without growing the set.
	members := map[uint]bool{}
	channelRepo := &fakeChannelRepo{
		T: t,
		addUserToChannel: func(t *testing.T, channelID, userID uint) error {
			if channelID != 2 {
				return fmt.Errorf("channel %d: %w", channelID, repositories.ErrNotFound)
			}
			if userID != 5 {
				return fmt.Errorf("user %d: %w", userID, repositories.ErrNotFound)
			}
			members[userID] = true
			return nil
		},
	}

	h := NewChannelHandler(channelRepo, &fakeUserRepo{T: t}, &fakeViewingRepo{T: t})
	srv := newTestServer(t, func(g *echo.Group) { h.RegisterChannelRoutes(g) })

	resp := doRequest(t, "POST", srv.URL+"/api/channels/2/users/5", "3", "")
	checkStatus(t, resp.StatusCode, 200)
	checkBody(t, resp, `{"status": "success"}`)

	// Adding twice changes nothing and still succeeds.
	resp = doRequest(t, "POST", srv.URL+"/api/channels/2/users/5", "3", "")
	checkStatus(t, resp.StatusCode, 200)
	checkBody(t, resp, `{"status": "success"}`)
	if len(members) != 1 {
		t.Errorf("Got %d members, want 1", len(members))
	}

	// Unknown channel and unknown user both surface as 404.
	resp = doRequest(t, "POST", srv.URL+"/api/channels/99/users/5", "3", "")
	checkStatus(t, resp.StatusCode, 404)

	resp = doRequest(t, "POST", srv.URL+"/api/channels/2/users/99", "3", "")
	checkStatus(t, resp.StatusCode, 404)
}

func TestChannelHandler_DeleteChannel(t *testing.T) {
	var deleted bool
	channelRepo := &fakeChannelRepo{
		T: t,
		isMember: func(t *testing.T, channelID, userID uint) (bool, error) {
			return userID == 3, nil
		},
		deleteChannel: func(t *testing.T, id uint) error {
			if id != 2 {
				t.Errorf("Got channel id %d, want 2", id)
			}
			deleted = true
			return nil
		},
	}

	h := NewChannelHandler(channelRepo, &fakeUserRepo{T: t}, &fakeViewingRepo{T: t})
	srv := newTestServer(t, func(g *echo.Group) { h.RegisterChannelRoutes(g) })

	// Non-members may not delete.
	resp := doRequest(t, "DELETE", srv.URL+"/api/channels/2", "4", "")
	checkStatus(t, resp.StatusCode, 403)
	if deleted {
		t.Fatal("DeleteChannel must not be called for non-members")
	}

	// Members may.
	resp = doRequest(t, "DELETE", srv.URL+"/api/channels/2", "3", "")
	checkStatus(t, resp.StatusCode, 200)
	checkBody(t, resp, `{"status": "success"}`)
	if !deleted {
		t.Error("Expected the channel to be deleted")
	}
}

func TestChannelHandler_CreateChannel(t *testing.T) {
	var addedUser uint
	channelRepo := &fakeChannelRepo{
		T: t,
		createChannel: func(t *testing.T, channel *models.Channel) error {
			channel.ID = 7
			return nil
		},
		addUserToChannel: func(t *testing.T, channelID, userID uint) error {
			if channelID != 7 {
				t.Errorf("Got channelID %d, want 7", channelID)
			}
			addedUser = userID
			return nil
		},
	}

	h := NewChannelHandler(channelRepo, &fakeUserRepo{T: t}, &fakeViewingRepo{T: t})
	srv := newTestServer(t, func(g *echo.Group) { h.RegisterChannelRoutes(g) })

	resp := doRequest(t, "POST", srv.URL+"/api/channels", "3", `{"name": "announcements"}`)
	checkStatus(t, resp.StatusCode, 201)
	if addedUser != 3 {
		t.Errorf("Got first member %d, want the creator 3", addedUser)
	}

	resp = doRequest(t, "POST", srv.URL+"/api/channels", "3", `{"name": ""}`)
	checkStatus(t, resp.StatusCode, 400)
}
