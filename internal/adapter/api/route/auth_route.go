package route

import (
	"github.com/gin-gonic/gin"
	"github.com/parrillasur/reservabot/internal/adapter/api/controller"
)

// RegisterAuthRoutes registra las rutas de autenticación del panel
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", authController.Token)
	}
}
