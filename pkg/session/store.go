// Package session mantiene en memoria el estado conversacional por
// identidad: el historial acotado de turnos y el borrador de reserva en
// curso. El estado vive solo durante la vida del proceso.
package session

import (
	"sync"

	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/internal/domain/reservation"
)

// Store es el almacén de sesiones indexado por identidad de conversación
// (el número de teléfono normalizado del cliente). Es seguro bajo acceso
// concurrente de múltiples conversaciones.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*state
	maxHistory int
}

type state struct {
	// procMu serializa el procesamiento de mensajes de una misma
	// identidad; se mantiene tomado durante todo el turno, incluidas
	// las llamadas externas
	procMu sync.Mutex

	// dataMu protege history y draft
	dataMu  sync.Mutex
	history []conversation.Turn
	draft   *reservation.Draft
}

// NewStore crea un nuevo almacén de sesiones. maxHistory es la cantidad
// de turnos a recordar; el historial se trunca al superar el doble.
func NewStore(maxHistory int) *Store {
	return &Store{
		sessions:   make(map[string]*state),
		maxHistory: maxHistory,
	}
}

// session retorna el estado de la identidad, creándolo en el primer acceso
func (s *Store) session(id string) *state {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.sessions[id]; ok {
		return st
	}
	st = &state{}
	s.sessions[id] = st
	return st
}

// LockIdentity toma el lock de procesamiento de la identidad y retorna la
// función para liberarlo. Garantiza como máximo un mensaje en vuelo por
// identidad; mensajes concurrentes de la misma identidad se procesan uno
// después del otro.
func (s *Store) LockIdentity(id string) func() {
	st := s.session(id)
	st.procMu.Lock()
	return st.procMu.Unlock
}

// History retorna una copia del historial de la identidad, en orden de
// inserción
func (s *Store) History(id string) []conversation.Turn {
	st := s.session(id)
	st.dataMu.Lock()
	defer st.dataMu.Unlock()

	out := make([]conversation.Turn, len(st.history))
	copy(out, st.history)
	return out
}

// AppendTurn agrega un turno al historial. Al superar el doble de
// maxHistory se descartan los turnos más viejos; los más recientes
// siempre sobreviven.
func (s *Store) AppendTurn(id string, turn conversation.Turn) {
	st := s.session(id)
	st.dataMu.Lock()
	defer st.dataMu.Unlock()

	st.history = append(st.history, turn)
	if limit := s.maxHistory * 2; len(st.history) > limit {
		st.history = append([]conversation.Turn(nil), st.history[len(st.history)-limit:]...)
	}
}

// Draft retorna el borrador de reserva de la identidad, creando uno vacío
// en el primer acceso. El puntero solo debe mutarse con el lock de la
// identidad tomado.
func (s *Store) Draft(id string) *reservation.Draft {
	st := s.session(id)
	st.dataMu.Lock()
	defer st.dataMu.Unlock()

	if st.draft == nil {
		st.draft = &reservation.Draft{Contact: id}
	}
	return st.draft
}

// ClearDraft elimina el borrador por completo; el próximo acceso crea uno
// nuevo vacío
func (s *Store) ClearDraft(id string) {
	st := s.session(id)
	st.dataMu.Lock()
	defer st.dataMu.Unlock()
	st.draft = nil
}
