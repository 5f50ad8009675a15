package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parrillasur/reservabot/internal/adapter/api/dto"
	"github.com/parrillasur/reservabot/internal/adapter/whatsapp"
	"github.com/parrillasur/reservabot/pkg/dedup"
	"github.com/parrillasur/reservabot/pkg/logger"
)

// MessageHandler procesa un mensaje entrante y retorna la respuesta
type MessageHandler interface {
	HandleMessage(ctx context.Context, identity, text string) string
}

// WebhookController gestiona las notificaciones entrantes de WhatsApp
type WebhookController struct {
	handler     MessageHandler
	sender      whatsapp.Sender
	window      dedup.Window
	verifyToken string
	log         logger.Logger

	// timeout de procesamiento de cada mensaje, ya desacoplado del
	// request HTTP original
	processTimeout time.Duration

	// en tests el procesamiento corre en línea, sin goroutine
	inline bool
}

// NewWebhookController crea una nueva instancia de WebhookController
func NewWebhookController(handler MessageHandler, sender whatsapp.Sender, window dedup.Window, verifyToken string, log logger.Logger) *WebhookController {
	return &WebhookController{
		handler:        handler,
		sender:         sender,
		window:         window,
		verifyToken:    verifyToken,
		log:            log,
		processTimeout: 2 * time.Minute,
	}
}

// Verify responde el desafío de verificación del webhook
// @Summary Verifica el webhook
// @Description Responde el desafío de suscripción de la Cloud API de WhatsApp
// @Tags webhook
// @Produce plain
// @Param hub.mode query string true "Modo de verificación"
// @Param hub.verify_token query string true "Token de verificación"
// @Param hub.challenge query string true "Desafío a devolver"
// @Success 200 {string} string
// @Failure 403 {object} dto.ErrorResponse
// @Router /webhook [get]
func (c *WebhookController) Verify(ctx *gin.Context) {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token == c.verifyToken {
		c.log.Info("Webhook verificado")
		ctx.String(http.StatusOK, challenge)
		return
	}

	ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "verificación rechazada", ""))
}

// Receive recibe las notificaciones de mensajes entrantes
// @Summary Recibe mensajes de WhatsApp
// @Description Procesa los mensajes entrantes y responde por la Cloud API
// @Tags webhook
// @Accept json
// @Produce json
// @Param notification body dto.WebhookEnvelope true "Notificación de WhatsApp"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhook [post]
func (c *WebhookController) Receive(ctx *gin.Context) {
	var envelope dto.WebhookEnvelope
	if err := ctx.ShouldBindJSON(&envelope); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "notificación inválida", err.Error()))
		return
	}

	for _, entry := range envelope.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				c.dispatch(ctx.Request.Context(), msg)
			}
		}
	}

	// La Cloud API espera el 200 enseguida; el procesamiento ya quedó
	// corriendo aparte
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

// dispatch descarta duplicados y lanza el procesamiento del mensaje
func (c *WebhookController) dispatch(reqCtx context.Context, msg dto.WebhookMessage) {
	if msg.Type != "" && msg.Type != "text" {
		c.log.Debug("Mensaje no textual ignorado", "type", msg.Type, "id", msg.ID)
		return
	}

	text := strings.TrimSpace(msg.Text.Body)
	if text == "" || msg.From == "" {
		return
	}

	seen, err := c.window.Seen(reqCtx, msg.ID)
	if err != nil {
		// Ante una falla del deduplicador preferimos procesar de más
		// que perder el mensaje
		c.log.Warn("Error al consultar duplicados, procesando igual", "id", msg.ID, "error", err)
	} else if seen {
		c.log.Info("Mensaje duplicado descartado", "id", msg.ID)
		return
	}

	identity := NormalizeIdentity(msg.From)

	if c.inline {
		c.process(identity, text)
		return
	}
	go c.process(identity, text)
}

func (c *WebhookController) process(identity, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.processTimeout)
	defer cancel()

	reply := c.handler.HandleMessage(ctx, identity, text)
	if strings.TrimSpace(reply) == "" {
		return
	}

	if err := c.sender.Send(ctx, identity, reply); err != nil {
		c.log.Error("Error al enviar respuesta", "identity", identity, "error", err)
	}
}

// NormalizeIdentity normaliza el número argentino de WhatsApp: la Cloud
// API entrega los móviles con el prefijo 549, pero los envíos salen al
// formato 54
func NormalizeIdentity(phone string) string {
	if strings.HasPrefix(phone, "549") {
		return "54" + phone[3:]
	}
	return phone
}
