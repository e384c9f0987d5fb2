// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatly/internal/designer"
	"seatly/internal/events"
	"seatly/internal/notifications"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	producer     notifications.Producer
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetCacheService injects the cache service used by read paths
func (r *Router) SetCacheService(cacheService cache.Service) {
	r.cacheService = cacheService
}

// SetNotificationProducer injects the layout notification publisher
func (r *Router) SetNotificationProducer(producer notifications.Producer) {
	r.producer = producer
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup designer routes
		r.setupDesignerRoutes(api)

		// Setup event routes
		r.setupEventRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupDesignerRoutes configures seating designer session routes
func (r *Router) setupDesignerRoutes(rg *gin.RouterGroup) {
	manager := designer.NewManager(r.db.GetRedisClient())
	controller := designer.NewController(manager)

	designer.SetupDesignerRoutes(rg, controller)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}
	if r.producer != nil {
		eventService.SetNotificationProducer(r.producer)
	}
	eventService.SetRedisClient(r.db.GetRedisClient())

	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}
