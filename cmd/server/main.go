package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/router"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/services"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/config"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/firebase"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.Env)
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Redis for the delayed delivery queue
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer rdb.Close()

	// Initialize Firebase. Optional: without it, push delivery and Firebase
	// login are disabled but the service still runs.
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Printf("Firebase disabled: %v\n", err)
		firebaseApp = nil
	}

	// Initialize the Resend mailer. Also optional.
	var mail services.Mailer
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	} else {
		log.Println("RESEND_API_KEY not set, email delivery disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	stop := router.SetupRoutes(e, router.Dependencies{
		Config:      cfg,
		Postgres:    db.Postgres,
		Mongo:       db.Mongo,
		Redis:       rdb,
		FirebaseApp: firebaseApp,
		Mailer:      mail,
	})
	defer stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
