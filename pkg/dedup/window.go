// Package dedup implementa la supresión de mensajes duplicados en el
// borde del transporte: una ventana acotada de identificadores recientes
// que evita procesar dos veces una entrega reintentada.
package dedup

import (
	"context"
	"sync"
)

// Window registra identificadores de mensajes y detecta repetidos dentro
// de una ventana acotada
type Window interface {
	// Seen registra el identificador y reporta si ya había sido visto
	Seen(ctx context.Context, id string) (bool, error)
}

// MemoryWindow es la implementación en memoria de Window: un conjunto con
// desalojo FIFO (los identificadores más viejos se descartan primero)
type MemoryWindow struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
	max   int
}

// NewMemoryWindow crea una ventana en memoria con capacidad máxima max.
// Al superarla se descarta la mitad más vieja.
func NewMemoryWindow(max int) *MemoryWindow {
	if max < 2 {
		max = 2
	}
	return &MemoryWindow{
		seen: make(map[string]struct{}),
		max:  max,
	}
}

// Seen registra el identificador y reporta si ya había sido visto
func (w *MemoryWindow) Seen(_ context.Context, id string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[id]; ok {
		return true, nil
	}

	w.seen[id] = struct{}{}
	w.order = append(w.order, id)

	if len(w.order) > w.max {
		drop := w.order[:len(w.order)/2]
		for _, old := range drop {
			delete(w.seen, old)
		}
		w.order = append([]string(nil), w.order[len(drop):]...)
	}

	return false, nil
}

// Size retorna la cantidad de identificadores retenidos
func (w *MemoryWindow) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.order)
}
