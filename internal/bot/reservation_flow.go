package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parrillasur/reservabot/internal/domain/availability"
	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/internal/domain/reservation"
	"github.com/parrillasur/reservabot/pkg/dates"
	"github.com/parrillasur/reservabot/pkg/logger"
	"github.com/parrillasur/reservabot/pkg/rules"
	"github.com/parrillasur/reservabot/pkg/session"
)

// ReservationFlow conduce la conversación de reserva: acumula datos en el
// borrador de la sesión, pide lo que falta, presenta el resumen y confirma
// contra el almacén de slots.
type ReservationFlow struct {
	sessions  *session.Store
	slots     availability.Repository
	extractor conversation.Extractor
	responder conversation.Responder
	rules     *rules.Rules
	log       logger.Logger
	now       func() time.Time
}

// NewReservationFlow crea el flujo de reservas
func NewReservationFlow(sessions *session.Store, slots availability.Repository, extractor conversation.Extractor, responder conversation.Responder, r *rules.Rules, log logger.Logger) *ReservationFlow {
	return &ReservationFlow{
		sessions:  sessions,
		slots:     slots,
		extractor: extractor,
		responder: responder,
		rules:     r,
		log:       log,
		now:       time.Now,
	}
}

// Handle procesa un mensaje dentro del flujo de reserva y retorna la
// respuesta para el usuario
func (f *ReservationFlow) Handle(ctx context.Context, identity, text string) string {
	draft := f.sessions.Draft(identity)

	if draft.AwaitingConfirmation {
		// La afirmación se evalúa antes que la negación: "no confirmo"
		// confirma
		if f.isConfirmation(text) {
			return f.commit(ctx, identity, text, draft)
		}
		if f.isNegation(text) {
			f.sessions.ClearDraft(identity)
			f.remember(identity, text, f.rules.Responses.Restart)
			return f.rules.Responses.Restart
		}
		// Cualquier otra respuesta baja el borrador a recolección y se
		// procesa como un mensaje más, por si trae una corrección
		draft.AwaitingConfirmation = false
	}

	extraction, err := f.extractor.Extract(ctx, text, f.sessions.History(identity))
	if err != nil {
		f.log.Error("Error al extraer datos de reserva", "identity", identity, "error", err)
		return f.rules.Responses.Retry
	}

	if extraction.Date != "" {
		today := f.now()
		normalized := dates.Normalize(extraction.Date, today)
		if verr := dates.Validate(normalized, today, f.rules); verr != nil {
			// La fecha inválida corta el turno sin tocar el borrador:
			// lo ya acumulado sobrevive para el próximo mensaje
			f.log.Info("Fecha rechazada", "identity", identity, "date", extraction.Date, "reason", string(verr.Reason))
			return verr.Message
		}
		extraction.Date = normalized
	}

	if extraction.People > f.rules.MaxPeople {
		return f.rules.Responses.TooManyPeople
	}

	mergeDraft(draft, extraction)
	draft.Contact = identity

	if draft.Complete() {
		draft.AwaitingConfirmation = true
		summary := buildSummary(draft)
		f.remember(identity, text, summary)
		return summary
	}

	reply := f.missingPrompt(ctx, draft.Missing())
	f.remember(identity, text, reply)
	return reply
}

// commit intenta asentar la reserva del borrador contra el almacén de slots
func (f *ReservationFlow) commit(ctx context.Context, identity, text string, draft *reservation.Draft) string {
	if !draft.Complete() {
		// No confirmamos nunca un borrador incompleto, aunque el usuario
		// diga que sí
		draft.AwaitingConfirmation = false
		reply := f.missingPrompt(ctx, draft.Missing())
		f.remember(identity, text, reply)
		return reply
	}

	open, err := f.slots.ListOpenSlots(ctx, draft.Date)
	if err != nil {
		f.log.Error("Error al consultar disponibilidad", "identity", identity, "date", draft.Date, "error", err)
		draft.AwaitingConfirmation = false
		reply := f.rules.Responses.BookingFailed
		f.remember(identity, text, reply)
		return reply
	}

	var match *availability.Slot
	for i := range open {
		if open[i].Matches(draft.Time, draft.Sector) {
			match = &open[i]
			break
		}
	}

	if match == nil {
		reply := f.suggestAlternatives(draft, open)
		draft.AwaitingConfirmation = false
		f.remember(identity, text, reply)
		return reply
	}

	conf, err := f.slots.Commit(ctx, draft.Date, draft.Time, draft.Sector, draft.Name, draft.Contact)
	if err != nil {
		draft.AwaitingConfirmation = false
		var reply string
		if errors.Is(err, availability.ErrSlotTaken) || errors.Is(err, availability.ErrSlotNotFound) {
			f.log.Warn("El slot se ocupó antes de completar la reserva", "identity", identity, "date", draft.Date, "time", draft.Time, "sector", draft.Sector)
			reply = "¡Uy! Justo se ocupó ese lugar mientras confirmábamos. " + f.rules.Responses.BookingFailed
		} else {
			f.log.Error("Error al asentar la reserva", "identity", identity, "error", err)
			reply = f.rules.Responses.BookingFailed
		}
		f.remember(identity, text, reply)
		return reply
	}

	f.sessions.ClearDraft(identity)
	f.log.Info("Reserva confirmada", "identity", identity, "operation_id", conf.OperationID, "date", conf.Slot.Date, "time", conf.Slot.Time, "sector", conf.Slot.Sector)

	reply := fmt.Sprintf(
		"¡Reserva confirmada! ✅\n%s, tu mesa en %s está reservada para el %s a las %s.\n¡Te esperamos en %s!",
		draft.Name, conf.Slot.Sector, dates.FormatForDisplay(conf.Slot.Date, f.now()), hourLabel(conf.Slot.Time), f.rules.Restaurant.Name,
	)
	f.remember(identity, text, reply)
	return reply
}

// suggestAlternatives arma la respuesta cuando la combinación pedida no
// está libre: primero otros sectores a la misma hora, después los otros
// horarios del día, y si no queda nada el mensaje de día completo
func (f *ReservationFlow) suggestAlternatives(draft *reservation.Draft, open []availability.Slot) string {
	var sameHourSectors []string
	for _, s := range open {
		if availability.SameHour(s.Time, draft.Time) {
			sameHourSectors = append(sameHourSectors, s.Sector)
		}
	}

	times := openHours(open)

	if len(sameHourSectors) == 0 && len(times) == 0 {
		return fmt.Sprintf(f.rules.Responses.FullyBooked, dates.FormatForDisplay(draft.Date, f.now()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "¡Uy! No hay disponibilidad para las %s en %s. ", hourLabel(draft.Time), draft.Sector)

	if len(sameHourSectors) > 0 {
		fmt.Fprintf(&b, "A esa misma hora todavía tengo lugar en %s. ", strings.Join(sameHourSectors, " o "))
	} else {
		fmt.Fprintf(&b, "Para esa fecha, me quedan lugares disponibles a las: %s. ", strings.Join(times, ", "))
	}

	b.WriteString("¿Querés reservar en alguna de estas opciones?")
	return b.String()
}

// missingPrompt arma el pedido de los datos faltantes; si el generador de
// respuestas falla usa una plantilla fija
func (f *ReservationFlow) missingPrompt(ctx context.Context, missing []string) string {
	list := joinNatural(missing)

	system := fmt.Sprintf(
		"Eres el asistente de reservas de %s, con tono amable y cercano (voseo argentino). Al usuario le falta indicar: %s. Pídeselo en un único mensaje corto, sin saludar de nuevo y sin inventar datos.",
		f.rules.Restaurant.Name, list,
	)
	reply, err := f.responder.Reply(ctx, system, nil, "Pide los datos faltantes.")
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			f.log.Warn("Error al generar pedido de datos faltantes, usando plantilla", "error", err)
		}
		return fmt.Sprintf("¡Casi lo tenemos! Para completar tu reserva, me falta que me digas: %s.", list)
	}
	return reply
}

func (f *ReservationFlow) isConfirmation(text string) bool {
	norm := strings.ToLower(strings.TrimSpace(text))
	for _, w := range f.rules.ConfirmationWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}

func (f *ReservationFlow) isNegation(text string) bool {
	norm := strings.ToLower(strings.TrimSpace(text))
	for _, w := range f.rules.NegationWords {
		if strings.HasPrefix(norm, w) {
			return true
		}
	}
	return false
}

func (f *ReservationFlow) remember(identity, userText, reply string) {
	f.sessions.AppendTurn(identity, conversation.Turn{Role: conversation.RoleUser, Content: userText})
	f.sessions.AppendTurn(identity, conversation.Turn{Role: conversation.RoleAssistant, Content: reply})
}

// mergeDraft vuelca en el borrador los campos presentes en la extracción.
// Los campos ausentes nunca pisan lo ya acumulado.
func mergeDraft(d *reservation.Draft, e *conversation.Extraction) {
	if e.Name != "" {
		d.Name = e.Name
	}
	if e.Date != "" {
		d.Date = e.Date
	}
	if e.Time != "" {
		d.Time = e.Time
	}
	if e.Sector != "" {
		d.Sector = e.Sector
	}
	if e.People > 0 {
		d.People = e.People
	}
}

func buildSummary(d *reservation.Draft) string {
	return fmt.Sprintf(
		"Por favor, confirma tu reserva:\nNombre: %s\nFecha: %s\nHora: %s\nSector: %s\nPersonas: %d\n¿Confirmas estos datos?",
		d.Name, d.Date, hourLabel(d.Time), d.Sector, d.People,
	)
}

// openHours retorna los horarios con lugar, únicos y ordenados, ya
// formateados para mostrar
func openHours(open []availability.Slot) []string {
	seen := map[int]bool{}
	var hours []int
	for _, s := range open {
		if h, ok := availability.Hour(s.Time); ok && !seen[h] {
			seen[h] = true
			hours = append(hours, h)
		}
	}
	sort.Ints(hours)

	out := make([]string, 0, len(hours))
	for _, h := range hours {
		out = append(out, fmt.Sprintf("%d:00 hs", h))
	}
	return out
}

func hourLabel(v string) string {
	if h, ok := availability.Hour(v); ok {
		return fmt.Sprintf("%d:00 hs", h)
	}
	return v
}

// joinNatural une los elementos con comas y una "y" final
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
	}
}
