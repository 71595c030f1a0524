package broadcast

import (
	"context"

	"github.com/crestline/huddle/backend/internal/models"
)

// Notifier is the extension point for pushing "new content" events to a
// real-time collaborator. Implementations are strictly fire-and-forget:
// they must not block the caller and their failures never propagate to the
// operation that produced the content.
type Notifier interface {
	PostCreated(ctx context.Context, post *models.Post)
	CommentCreated(ctx context.Context, comment *models.Comment)
}

// Noop is the default Notifier. It drops every event.
type Noop struct{}

func (Noop) PostCreated(context.Context, *models.Post)       {}
func (Noop) CommentCreated(context.Context, *models.Comment) {}
