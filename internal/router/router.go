package router

import (
	"net/http"
	"time"

	"github.com/hamarpea/voicenter-crm-backend/internal/config"
	"github.com/hamarpea/voicenter-crm-backend/internal/handlers"
	"github.com/hamarpea/voicenter-crm-backend/internal/middleware"
	"github.com/hamarpea/voicenter-crm-backend/internal/services"
	excelservice "github.com/hamarpea/voicenter-crm-backend/internal/services/excel"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with the integration API routes
func SetupRouter(db *gorm.DB, cfg *config.Config, syncService *services.SyncService, settingsService *services.SettingsService, exportService *excelservice.Service) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create handlers
	syncHandler := handlers.NewSyncHandler(syncService)
	callLogHandler := handlers.NewCallLogHandler(db)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(exportService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(cfg.JWTSecret))
	{
		api.POST("/voicenter/sync", syncHandler.SyncNow)
		api.GET("/voicenter/sync/status", syncHandler.Status)

		api.GET("/calls", callLogHandler.ListCalls)
		api.GET("/calls/:id", callLogHandler.GetCall)
		api.GET("/calls/:id/recording", callLogHandler.GetRecording)
		api.POST("/calls/:id/followup-done", callLogHandler.MarkFollowupDone)

		api.GET("/contacts/:id/call-stats", callLogHandler.ContactCallStats)
		api.GET("/leads/:id/call-stats", callLogHandler.LeadCallStats)

		api.GET("/settings/voicenter", settingsHandler.GetSettings)
		api.PUT("/settings/voicenter", settingsHandler.UpdateSettings)

		api.GET("/reports/call-logs/export", reportHandler.ExportCallLogs)
	}

	return r
}
