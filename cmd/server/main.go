package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamarpea/voicenter-crm-backend/internal/config"
	"github.com/hamarpea/voicenter-crm-backend/internal/database"
	"github.com/hamarpea/voicenter-crm-backend/internal/database/repository"
	"github.com/hamarpea/voicenter-crm-backend/internal/router"
	"github.com/hamarpea/voicenter-crm-backend/internal/services"
	excelservice "github.com/hamarpea/voicenter-crm-backend/internal/services/excel"
	"github.com/hamarpea/voicenter-crm-backend/internal/utils"
	"github.com/hamarpea/voicenter-crm-backend/internal/voicenter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	callLogRepo := repository.NewCallLogRepository(db)
	contactRepo := repository.NewContactRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	syncStateRepo := repository.NewSyncStateRepository(db)

	// Initialize notification service (optional, sync runs without it)
	var notifier services.FollowupNotifier
	notificationService, err := services.NewNotificationService()
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
	} else {
		defer notificationService.Close()
		notifier = notificationService
	}

	// Initialize services
	settingsService := services.NewSettingsService(settingRepo)
	matcherService := services.NewMatcherService(contactRepo, leadRepo)
	ownerResolver := services.NewEntityOwnerResolver(contactRepo, leadRepo)
	followupService := services.NewFollowupService(callLogRepo, activityRepo, userRepo, ownerResolver, notifier)
	voicenterClient := voicenter.NewClient(cfg.VoicenterBaseURL)
	syncService := services.NewSyncService(voicenterClient, callLogRepo, syncStateRepo, matcherService, followupService, settingsService)
	exportService := excelservice.NewExportService(callLogRepo, cfg.ExportsDir)

	// Start the smart-interval sync scheduler
	scheduler := services.NewSchedulerService(syncService, settingsService)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize router
	r := router.SetupRouter(db, cfg, syncService, settingsService, exportService)

	// Configure HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
