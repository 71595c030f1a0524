package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts accepted by the content service.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_posts_created_total",
		Help: "Number of posts created.",
	})

	// CommentsCreated counts comments accepted by the content service.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_comments_created_total",
		Help: "Number of comments created.",
	})

	// ReactionToggles counts reaction toggles by transition result
	// (added, incremented, decremented, removed).
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "huddle_reaction_toggles_total",
		Help: "Number of post reaction toggles by result.",
	}, []string{"result"})

	// ImagesStored counts uploads accepted by the image store.
	ImagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_images_stored_total",
		Help: "Number of images stored.",
	})
)
