package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrillasur/reservabot/internal/domain/availability"
	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/pkg/logger"
	"github.com/parrillasur/reservabot/pkg/rules"
	"github.com/parrillasur/reservabot/pkg/session"
)

// martes 1 de julio de 2025
var testToday = time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

const testIdentity = "5411987654"

// fakeNLU implementa Classifier, Extractor y Responder con respuestas fijas
type fakeNLU struct {
	intent      conversation.Intent
	classifyErr error

	extraction *conversation.Extraction
	extractErr error

	reply    string
	replyErr error
}

func (f *fakeNLU) Classify(context.Context, string) (conversation.Intent, error) {
	return f.intent, f.classifyErr
}

func (f *fakeNLU) Extract(context.Context, string, []conversation.Turn) (*conversation.Extraction, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	if f.extraction == nil {
		return &conversation.Extraction{}, nil
	}
	copied := *f.extraction
	return &copied, nil
}

func (f *fakeNLU) Reply(context.Context, string, []conversation.Turn, string) (string, error) {
	return f.reply, f.replyErr
}

// fakeSlotRepo implementa availability.Repository sobre una lista fija
type fakeSlotRepo struct {
	open      []availability.Slot
	listErr   error
	commitErr error

	committed      bool
	committedName  string
	committedHour  string
	committedPlace string
}

func (r *fakeSlotRepo) ListOpenSlots(context.Context, string) ([]availability.Slot, error) {
	return r.open, r.listErr
}

func (r *fakeSlotRepo) ListByDate(context.Context, string) ([]availability.Slot, error) {
	return r.open, r.listErr
}

func (r *fakeSlotRepo) Create(context.Context, *availability.Slot) error {
	return nil
}

func (r *fakeSlotRepo) Commit(_ context.Context, date, hour, sector, name, _ string) (*availability.Confirmation, error) {
	if r.commitErr != nil {
		return nil, r.commitErr
	}
	r.committed = true
	r.committedName = name
	r.committedHour = hour
	r.committedPlace = sector
	return &availability.Confirmation{
		OperationID: "op-1",
		Slot:        availability.Slot{Date: date, Time: hour, Sector: sector, ReservedName: name},
	}, nil
}

func newTestFlow(nluFake *fakeNLU, repo *fakeSlotRepo) (*ReservationFlow, *session.Store) {
	r := rules.Default()
	sessions := session.NewStore(r.MaxHistory)
	flow := NewReservationFlow(sessions, repo, nluFake, nluFake, r, logger.NewLogger())
	flow.now = func() time.Time { return testToday }
	return flow, sessions
}

func TestHandleAsksForMissingFields(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, Name: "Ana"},
		replyErr:   errors.New("modelo caído"),
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})

	reply := flow.Handle(context.Background(), testIdentity, "quiero reservar, soy Ana")

	assert.Contains(t, reply, "me falta que me digas: la fecha, la hora, la cantidad de personas y el sector (Interior o Terraza)")
	assert.Equal(t, "Ana", sessions.Draft(testIdentity).Name)
	assert.False(t, sessions.Draft(testIdentity).AwaitingConfirmation)
}

func TestHandleTableForTwoAsksForTheRest(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, People: 2},
		replyErr:   errors.New("sin modelo"),
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})

	reply := flow.Handle(context.Background(), testIdentity, "quiero una mesa para 2")

	assert.Contains(t, reply, "tu nombre")
	assert.Contains(t, reply, "la fecha")
	assert.Contains(t, reply, "la hora")
	assert.Contains(t, reply, "el sector (Interior o Terraza)")
	assert.NotContains(t, reply, "la cantidad de personas", "lo ya informado no se vuelve a pedir")
	assert.Equal(t, 2, sessions.Draft(testIdentity).People)
}

func TestHandleMergeNeverErasesFields(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, Name: "Ana", People: 4},
		replyErr:   errors.New("sin modelo"),
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})

	flow.Handle(context.Background(), testIdentity, "soy Ana, somos 4")

	// El segundo turno trae solo la fecha; lo acumulado no se pierde
	nluFake.extraction = &conversation.Extraction{IsReservation: true, Date: "mañana"}
	flow.Handle(context.Background(), testIdentity, "para mañana")

	draft := sessions.Draft(testIdentity)
	assert.Equal(t, "Ana", draft.Name)
	assert.Equal(t, 4, draft.People)
	assert.Equal(t, "2025-07-02", draft.Date, "la fecha se guarda normalizada")
}

func TestHandleCompleteDraftPresentsSummary(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{
			IsReservation: true,
			Name:          "Ana",
			Date:          "mañana",
			Time:          "21:00",
			Sector:        "Terraza",
			People:        4,
		},
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})

	reply := flow.Handle(context.Background(), testIdentity, "Ana, mañana 21 hs, terraza, 4 personas")

	assert.Contains(t, reply, "Por favor, confirma tu reserva:")
	assert.Contains(t, reply, "Nombre: Ana")
	assert.Contains(t, reply, "Fecha: 2025-07-02")
	assert.Contains(t, reply, "Hora: 21:00 hs")
	assert.Contains(t, reply, "Sector: Terraza")
	assert.Contains(t, reply, "Personas: 4")
	assert.Contains(t, reply, "¿Confirmas estos datos?")
	assert.True(t, sessions.Draft(testIdentity).AwaitingConfirmation)
}

func TestHandleRejectsClosedDayWithoutTouchingDraft(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, Name: "Ana", Date: "próximo lunes"},
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "Ana, para el próximo lunes")

	assert.Equal(t, r.Responses.ClosedDay, reply)
	draft := sessions.Draft(testIdentity)
	assert.Empty(t, draft.Date, "la fecha rechazada no entra al borrador")
	assert.Empty(t, draft.Name, "la validación fallida corta el turno entero")
}

func TestHandleRejectsPastAndFarDates(t *testing.T) {
	flow, _ := newTestFlow(&fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, Date: "2025-06-29"},
	}, &fakeSlotRepo{})
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "para el 29 de junio")
	assert.Equal(t, r.Responses.PastDate, reply)

	flow2, _ := newTestFlow(&fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, Date: "2025-08-30"},
	}, &fakeSlotRepo{})

	reply = flow2.Handle(context.Background(), testIdentity, "para fin de agosto")
	assert.Equal(t, fmt.Sprintf(r.Responses.TooFarAhead, r.MaxAdvanceDays), reply)
}

func TestHandleRejectsTooManyPeople(t *testing.T) {
	nluFake := &fakeNLU{
		extraction: &conversation.Extraction{IsReservation: true, People: 12},
	}
	flow, sessions := newTestFlow(nluFake, &fakeSlotRepo{})
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "somos 12")

	assert.Equal(t, r.Responses.TooManyPeople, reply)
	assert.Zero(t, sessions.Draft(testIdentity).People)
}

func TestHandleExtractionFailureAsksRetry(t *testing.T) {
	nluFake := &fakeNLU{extractErr: conversation.ErrExtractionFailed}
	flow, _ := newTestFlow(nluFake, &fakeSlotRepo{})
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "quiero reservar")

	assert.Equal(t, r.Responses.Retry, reply)
}

func completeDraft(sessions *session.Store) {
	draft := sessions.Draft(testIdentity)
	draft.Name = "Ana"
	draft.Date = "2025-07-02"
	draft.Time = "21:00"
	draft.Sector = "Terraza"
	draft.People = 4
	draft.AwaitingConfirmation = true
}

func TestConfirmationCommitsReservation(t *testing.T) {
	repo := &fakeSlotRepo{
		open: []availability.Slot{
			{ID: "s1", Date: "2025-07-02", Time: "21", Sector: "Terraza", Capacity: 4},
		},
	}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)

	reply := flow.Handle(context.Background(), testIdentity, "sí, confirmo")

	require.True(t, repo.committed)
	assert.Equal(t, "Ana", repo.committedName)
	assert.Contains(t, reply, "¡Reserva confirmada!")
	assert.Contains(t, reply, "mañana")
	assert.Contains(t, reply, "21:00 hs")

	fresh := sessions.Draft(testIdentity)
	assert.Empty(t, fresh.Name, "el borrador se limpia tras confirmar")
	assert.False(t, fresh.AwaitingConfirmation)
}

func TestConfirmationWinsOverLeadingNegation(t *testing.T) {
	repo := &fakeSlotRepo{
		open: []availability.Slot{
			{ID: "s1", Date: "2025-07-02", Time: "21", Sector: "Terraza", Capacity: 4},
		},
	}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)

	// La palabra de confirmación pesa más que el "no" inicial
	reply := flow.Handle(context.Background(), testIdentity, "no confirmo")

	assert.True(t, repo.committed)
	assert.Contains(t, reply, "¡Reserva confirmada!")
}

func TestNegationRestartsConversation(t *testing.T) {
	flow, sessions := newTestFlow(&fakeNLU{}, &fakeSlotRepo{})
	completeDraft(sessions)
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "no, mejor no")

	assert.Equal(t, r.Responses.Restart, reply)
	assert.Empty(t, sessions.Draft(testIdentity).Name)
}

func TestConfirmationSuggestsOtherSectorsAtSameHour(t *testing.T) {
	repo := &fakeSlotRepo{
		open: []availability.Slot{
			{ID: "s1", Date: "2025-07-02", Time: "21", Sector: "Interior", Capacity: 4},
		},
	}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)

	reply := flow.Handle(context.Background(), testIdentity, "sí")

	assert.False(t, repo.committed)
	assert.Contains(t, reply, "No hay disponibilidad para las 21:00 hs en Terraza")
	assert.Contains(t, reply, "A esa misma hora todavía tengo lugar en Interior")
	assert.False(t, sessions.Draft(testIdentity).AwaitingConfirmation)
	assert.Equal(t, "Ana", sessions.Draft(testIdentity).Name, "el borrador sobrevive para elegir otra opción")
}

func TestConfirmationSuggestsOtherTimes(t *testing.T) {
	repo := &fakeSlotRepo{
		open: []availability.Slot{
			{ID: "s1", Date: "2025-07-02", Time: "22", Sector: "Interior", Capacity: 4},
			{ID: "s2", Date: "2025-07-02", Time: "20", Sector: "Terraza", Capacity: 4},
		},
	}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)

	reply := flow.Handle(context.Background(), testIdentity, "sí")

	assert.Contains(t, reply, "me quedan lugares disponibles a las: 20:00 hs, 22:00 hs")
}

func TestConfirmationReportsFullyBookedDay(t *testing.T) {
	flow, sessions := newTestFlow(&fakeNLU{}, &fakeSlotRepo{})
	completeDraft(sessions)
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "sí")

	assert.Equal(t, fmt.Sprintf(r.Responses.FullyBooked, "mañana"), reply)
}

func TestCommitRaceKeepsDraftForRetry(t *testing.T) {
	repo := &fakeSlotRepo{
		open: []availability.Slot{
			{ID: "s1", Date: "2025-07-02", Time: "21", Sector: "Terraza", Capacity: 4},
		},
		commitErr: availability.ErrSlotTaken,
	}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)

	reply := flow.Handle(context.Background(), testIdentity, "sí")

	assert.Contains(t, reply, "Justo se ocupó ese lugar")
	draft := sessions.Draft(testIdentity)
	assert.True(t, draft.Complete(), "los datos quedan para reintentar")
	assert.False(t, draft.AwaitingConfirmation)
}

func TestCommitStoreFailureReportsAndKeepsDraft(t *testing.T) {
	repo := &fakeSlotRepo{listErr: errors.New("base de datos caída")}
	flow, sessions := newTestFlow(&fakeNLU{}, repo)
	completeDraft(sessions)
	r := rules.Default()

	reply := flow.Handle(context.Background(), testIdentity, "sí")

	assert.Equal(t, r.Responses.BookingFailed, reply)
	assert.True(t, sessions.Draft(testIdentity).Complete())
}
