package router

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/handlers"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/middleware"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/config"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/firebase"
)

// Dependencies carries the external clients the router wires into handlers.
// Mailer, FirebaseApp and Mongo may be nil; the affected delivery channels are
// then skipped rather than failing.
type Dependencies struct {
	Config      *config.Config
	Postgres    *gorm.DB
	Mongo       *mongo.Client
	Redis       *redis.Client
	FirebaseApp *firebase.App
	Mailer      services.Mailer
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes, wires the dependency graph
// and returns the started delivery worker's stop function.
func SetupRoutes(e *echo.Echo, deps Dependencies) func() {
	pgdb := deps.Postgres
	cfg := deps.Config

	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FollowEdge{},
		&models.Like{},
		&models.Comment{},
		&models.Wall{},
		&models.Artwork{},
		&models.Post{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.Device{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	wallRepo := repositories.NewPostgresWallRepository(pgdb)
	artworkRepo := repositories.NewPostgresArtworkRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	preferenceRepo := repositories.NewPostgresPreferenceRepository(pgdb)
	deviceRepo := repositories.NewPostgresDeviceRepository(pgdb)
	counterStore := repositories.NewCounterStore(pgdb)
	entityRegistry := repositories.NewEntityRegistry(pgdb)

	var journal repositories.DeliveryJournal
	if deps.Mongo != nil {
		journal = repositories.NewMongoDeliveryJournal(deps.Mongo.Database("muralfinder"))
	}

	// --- Initialize Services ---
	clk := clock.System()

	var push services.PushSender
	if deps.FirebaseApp != nil {
		push = deps.FirebaseApp.Sender()
	}

	deliveryQueue := services.NewDeliveryQueue(deps.Redis)
	deliveryWorker := services.NewDeliveryWorker(
		notificationRepo, userRepo, deviceRepo, journal, deliveryQueue,
		deps.Mailer, push, clk, cfg.DeliveryWorkers, cfg.DeliveryQueueSize,
	)
	stopWorker := deliveryWorker.Start()
	log.Println("Delivery worker pool started.")

	preferenceService := services.NewPreferenceService(preferenceRepo, clk)
	notificationService := services.NewNotificationService(
		pgdb, notificationRepo, userRepo, preferenceService, deliveryQueue, deliveryWorker, clk,
	)
	relationshipService := services.NewRelationshipService(
		pgdb, followRepo, userRepo, counterStore, notificationService, clk,
	)
	engagementService := services.NewEngagementService(
		pgdb, entityRegistry, likeRepo, commentRepo, userRepo, counterStore, notificationService, clk,
	)
	contentService := services.NewContentService(
		pgdb, wallRepo, artworkRepo, postRepo, followRepo, counterStore, notificationService, clk,
	)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, deps.FirebaseApp, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	followHandler := handlers.NewFollowHandler(relationshipService)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api)

	contentHandler := handlers.NewContentHandler(contentService, wallRepo, artworkRepo, postRepo)
	contentHandler.RegisterContentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)

	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	preferenceHandler.RegisterPreferenceRoutes(api)

	deviceHandler := handlers.NewDeviceHandler(deviceRepo)
	deviceHandler.RegisterDeviceRoutes(api)

	log.Println("All routes configured.")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stopWorker(ctx); err != nil {
			log.Printf("Delivery worker shutdown: %v\n", err)
		}
	}
}
