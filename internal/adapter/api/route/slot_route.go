package route

import (
	"github.com/gin-gonic/gin"
	"github.com/parrillasur/reservabot/internal/adapter/api/controller"
	"github.com/parrillasur/reservabot/pkg/middleware"
)

// RegisterSlotRoutes registra las rutas de administración de slots
func RegisterSlotRoutes(r *gin.RouterGroup, slotController *controller.SlotController) {
	slots := r.Group("/slots")
	slots.Use(middleware.AuthMiddleware())
	{
		slots.POST("", slotController.Create)
		slots.GET("", slotController.List)
		slots.GET("/summary", slotController.Summary)
	}
}
