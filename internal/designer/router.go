package designer

import (
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDesignerRoutes(rg *gin.RouterGroup, controller *Controller) {
	sessions := rg.Group("/designer/sessions")
	sessions.Use(middleware.JWTAuth())
	{
		sessions.POST("", controller.CreateSession)
		sessions.GET("/:id", controller.GetSession)
		sessions.DELETE("/:id", controller.CloseSession)

		sessions.PUT("/:id/mode", controller.SetMode)
		sessions.POST("/:id/click", controller.Click)
		sessions.POST("/:id/objects", controller.AddObject)
		sessions.POST("/:id/select", controller.Select)

		sessions.POST("/:id/drag/start", controller.StartDrag)
		sessions.POST("/:id/drag/move", controller.DragMove)
		sessions.POST("/:id/drag/end", controller.EndDrag)

		sessions.PATCH("/:id/sections/:sectionId", controller.PatchSection)
		sessions.DELETE("/:id/sections/:sectionId", controller.DeleteSection)
		sessions.DELETE("/:id/objects/:objectId", controller.DeleteObject)

		sessions.POST("/:id/undo", controller.Undo)
		sessions.POST("/:id/redo", controller.Redo)
		sessions.POST("/:id/arrange", controller.Arrange)
		sessions.GET("/:id/preview", controller.Preview)

		sessions.PUT("/:id/tickets/:name", controller.EditTicket)
		sessions.POST("/:id/tickets/reset", controller.ResetTickets)

		sessions.POST("/:id/draft", controller.SaveDraft)
	}

	drafts := rg.Group("/designer/drafts")
	drafts.Use(middleware.JWTAuth())
	{
		drafts.POST("/:id/restore", controller.RestoreDraft)
	}
}
