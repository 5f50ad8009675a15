package bot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/pkg/logger"
	"github.com/parrillasur/reservabot/pkg/rules"
	"github.com/parrillasur/reservabot/pkg/session"
)

// FAQFlow responde preguntas generales apoyándose en la base de
// conocimiento del restaurante y el historial de la conversación.
type FAQFlow struct {
	sessions  *session.Store
	responder conversation.Responder
	rules     *rules.Rules
	log       logger.Logger
}

// NewFAQFlow crea el flujo de preguntas generales
func NewFAQFlow(sessions *session.Store, responder conversation.Responder, r *rules.Rules, log logger.Logger) *FAQFlow {
	return &FAQFlow{
		sessions:  sessions,
		responder: responder,
		rules:     r,
		log:       log,
	}
}

// Handle responde un mensaje que no forma parte del flujo de reservas
func (f *FAQFlow) Handle(ctx context.Context, identity, text string) string {
	system := f.systemPrompt()
	history := f.sessions.History(identity)

	reply, err := f.responder.Reply(ctx, system, history, text)
	if err != nil {
		f.log.Error("Error al generar respuesta de FAQ", "identity", identity, "error", err)
		return f.rules.Responses.InternalError
	}
	if strings.TrimSpace(reply) == "" {
		// Respuesta vacía del modelo: al menos saludar
		reply = f.rules.Responses.Greeting
	}

	f.sessions.AppendTurn(identity, conversation.Turn{Role: conversation.RoleUser, Content: text})
	f.sessions.AppendTurn(identity, conversation.Turn{Role: conversation.RoleAssistant, Content: reply})
	return reply
}

func (f *FAQFlow) systemPrompt() string {
	return fmt.Sprintf(`Eres el asistente virtual de %s, un restaurante de parrilla argentina. Respondes con tono amable y cercano (voseo argentino), en mensajes cortos aptos para WhatsApp.

%s

### BASE DE CONOCIMIENTO
%s

### Reglas:
1. Responde únicamente con la información de arriba. Si no sabes algo, dilo y ofrece el teléfono de contacto.
2. Si el usuario quiere reservar, invítalo a decirte fecha, hora, sector y cantidad de personas.
3. No inventes promociones, precios ni horarios.`,
		f.rules.Restaurant.Name, f.rules.ContextPrompt(), f.knowledgeBase())
}

// knowledgeBase lee el archivo de preguntas frecuentes; si no está
// disponible se responde solo con las reglas del restaurante
func (f *FAQFlow) knowledgeBase() string {
	data, err := os.ReadFile(f.rules.KnowledgeBasePath)
	if err != nil {
		f.log.Warn("No se pudo leer la base de conocimiento", "path", f.rules.KnowledgeBasePath, "error", err)
		return "(sin información adicional)"
	}
	return strings.TrimSpace(string(data))
}
