package route

import (
	"github.com/gin-gonic/gin"
	"github.com/parrillasur/reservabot/internal/adapter/api/controller"
)

// RegisterWebhookRoutes registra las rutas del webhook de WhatsApp.
// No llevan autenticación propia: la Cloud API se valida por el token de
// verificación en la suscripción.
func RegisterWebhookRoutes(r *gin.RouterGroup, webhookController *controller.WebhookController) {
	webhook := r.Group("/webhook")
	{
		webhook.GET("", webhookController.Verify)
		webhook.POST("", webhookController.Receive)
	}
}
