package router

import (
	"log/slog"

	"github.com/crestline/huddle/backend/internal/broadcast"
	"github.com/crestline/huddle/backend/internal/cache"
	"github.com/crestline/huddle/backend/internal/handlers"
	"github.com/crestline/huddle/backend/internal/middleware"
	"github.com/crestline/huddle/backend/internal/models"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Deps carries the wiring inputs for SetupRoutes.
type Deps struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
	Notifier broadcast.Notifier
	Logger   *slog.Logger
}

// SetupRoutes migrates the schema, builds the repositories and registers
// all application routes.
func SetupRoutes(e *echo.Echo, deps Deps) error {
	err := deps.Postgres.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.ChannelLastViewed{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Emoji{},
	)
	if err != nil {
		return err
	}

	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	channelRepo := repositories.NewPostgresChannelRepository(deps.Postgres)
	viewingRepo := repositories.NewPostgresViewingRepository(deps.Postgres)
	postRepo := repositories.NewPostgresPostRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	reactionRepo := repositories.NewPostgresReactionRepository(deps.Postgres)
	imageRepo := repositories.NewMongoImageRepository(deps.Mongo.Database("huddle"))
	postCache := cache.NewRedis(deps.Redis)

	notifier := deps.Notifier
	if notifier == nil {
		notifier = broadcast.Noop{}
	}

	userHandler := handlers.NewUserHandler(userRepo)
	channelHandler := handlers.NewChannelHandler(channelRepo, userRepo, viewingRepo)
	postHandler := handlers.NewPostHandler(postRepo, commentRepo, channelRepo, userRepo, viewingRepo, postCache, notifier, deps.Logger)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notifier, deps.Logger)
	reactionHandler := handlers.NewReactionHandler(reactionRepo)
	imageHandler := handlers.NewImageHandler(imageRepo)

	imageHandler.RegisterServeRoutes(e)

	api := e.Group("/api", middleware.RequireUser())
	userHandler.RegisterUserRoutes(api)
	channelHandler.RegisterChannelRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	reactionHandler.RegisterReactionRoutes(api)
	imageHandler.RegisterUploadRoutes(api)

	return nil
}
