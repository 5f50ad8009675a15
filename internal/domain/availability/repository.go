package availability

import (
	"context"
	"errors"
)

var (
	// ErrSlotNotFound es retornado cuando no existe un slot para la
	// combinación fecha/hora/sector pedida
	ErrSlotNotFound = errors.New("slot no encontrado")

	// ErrSlotTaken es retornado cuando el slot existe pero otra reserva
	// lo ocupó antes de completar la escritura
	ErrSlotTaken = errors.New("slot ya reservado")
)

// Repository define la interfaz del almacén de disponibilidad. El núcleo
// conversacional nunca cachea slots entre turnos: cada decisión de commit
// relee la ocupación actual.
type Repository interface {
	// ListOpenSlots retorna los slots libres para una fecha. El orden
	// no está garantizado; el llamador agrupa u ordena según necesite.
	ListOpenSlots(ctx context.Context, date string) ([]Slot, error)

	// ListByDate retorna todos los slots de una fecha, incluidos los
	// reservados (vista administrativa)
	ListByDate(ctx context.Context, date string) ([]Slot, error)

	// Create registra un nuevo slot reservable
	Create(ctx context.Context, slot *Slot) error

	// Commit ocupa el slot que coincide con fecha/hora/sector a nombre
	// del cliente. La ocupación se verifica nuevamente en el momento de
	// la escritura: si otra reserva llegó primero retorna ErrSlotTaken.
	Commit(ctx context.Context, date, hour, sector, name, contact string) (*Confirmation, error)
}
