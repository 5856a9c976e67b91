package router

import (
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/dobarx/hivemind/backend/internal/handlers"
	"github.com/dobarx/hivemind/backend/internal/mailqueue"
	"github.com/dobarx/hivemind/backend/internal/middleware"
	"github.com/dobarx/hivemind/backend/internal/models"
	"github.com/dobarx/hivemind/backend/internal/notifications"
	"github.com/dobarx/hivemind/backend/internal/repositories"
	"github.com/dobarx/hivemind/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// push may be nil (push channel disabled).
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, push *messaging.Client, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Sub{},
		&models.SubMod{},
		&models.SubPost{},
		&models.SubPostComment{},
		&models.SubPostVote{},
		&models.SubPostCommentVote{},
		&models.SubPostCommentView{},
		&models.UserContentBlock{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	hub := notifications.NewHub(logger, cfg.WSAllowedOrigins...)

	var pushSender notifications.PushSender
	if push != nil {
		pushSender = notifications.NewFCMSender(push)
	}

	var emails notifications.EmailQueue
	if cfg.AllowEmailForwarding && db.Mongo != nil {
		queue := mailqueue.NewQueue(db.Mongo.Database("hivemind"), mailqueue.NewLogSender(logger), logger)
		if err := queue.Schedule(cfg.EmailQueueSpec); err != nil {
			log.Fatalf("Failed to schedule email notification queue: %v", err)
		}
		emails = queue
	}

	engine := notifications.NewEngine(notifications.EngineParams{
		Notifications: repositories.NewNotificationRepository(db.Postgres),
		Blocks:        repositories.NewBlockRepository(db.Postgres),
		Users:         repositories.NewUserRepository(db.Postgres),
		Subs:          repositories.NewSubRepository(db.Postgres),
		Posts:         repositories.NewPostRepository(db.Postgres),
		Push:          pushSender,
		Socket:        hub,
		Emails:        emails,
		SubPrefix:     cfg.SubPrefix,
		IconURL:       cfg.SiteIconURL,
		Logger:        logger,
	})

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	notificationHandler := handlers.NewNotificationHandler(engine, hub)
	notificationHandler.RegisterNotificationRoutes(api)
}
