// Package bot contiene la lógica conversacional: el enrutador de
// intenciones y los flujos de reserva y de preguntas generales.
package bot

import (
	"context"

	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/pkg/logger"
	"github.com/parrillasur/reservabot/pkg/session"
)

// Orchestrator recibe cada mensaje entrante, lo clasifica y lo deriva al
// flujo correspondiente. Los mensajes de una misma identidad se procesan
// de a uno; identidades distintas avanzan en paralelo.
type Orchestrator struct {
	classifier   conversation.Classifier
	reservations *ReservationFlow
	faq          *FAQFlow
	sessions     *session.Store
	log          logger.Logger
}

// NewOrchestrator crea el orquestador de mensajes
func NewOrchestrator(classifier conversation.Classifier, reservations *ReservationFlow, faq *FAQFlow, sessions *session.Store, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		classifier:   classifier,
		reservations: reservations,
		faq:          faq,
		sessions:     sessions,
		log:          log,
	}
}

// HandleMessage procesa un mensaje entrante de la identidad indicada y
// retorna la respuesta a enviar
func (o *Orchestrator) HandleMessage(ctx context.Context, identity, text string) string {
	unlock := o.sessions.LockIdentity(identity)
	defer unlock()

	intent, err := o.classifier.Classify(ctx, text)
	if err != nil {
		// La clasificación fallida no corta la conversación: el flujo
		// general puede responder igual
		o.log.Error("Error al clasificar la intención", "identity", identity, "error", err)
		intent = conversation.IntentOtro
	}

	o.log.Info("Mensaje enrutado", "identity", identity, "intent", string(intent))

	switch intent {
	case conversation.IntentReservar, conversation.IntentConfirmar, conversation.IntentCancelar:
		return o.reservations.Handle(ctx, identity, text)
	default:
		return o.faq.Handle(ctx, identity, text)
	}
}
