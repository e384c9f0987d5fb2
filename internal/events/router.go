package events

import (
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events and their rendered layouts
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)                       // GET /api/v1/events
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents)         // GET /api/v1/events/upcoming
		publicEvents.GET("/:eventId", controller.GetEvent)                  // GET /api/v1/events/:eventId
		publicEvents.GET("/:eventId/layout", controller.GetEventLayout)     // GET /api/v1/events/:eventId/layout
		publicEvents.GET("/:eventId/preview", controller.GetEventPreview)   // GET /api/v1/events/:eventId/preview
	}

	// Admin routes - event lifecycle management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)                        // POST /api/v1/admin/events
		adminEvents.PATCH("/:eventId/status", controller.UpdateEventStatus) // PATCH /api/v1/admin/events/:eventId/status
		adminEvents.PUT("/:eventId/seats", controller.SetSeatStatuses)      // PUT /api/v1/admin/events/:eventId/seats
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)             // DELETE /api/v1/admin/events/:eventId
	}
}
