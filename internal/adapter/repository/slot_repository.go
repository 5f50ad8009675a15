package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parrillasur/reservabot/internal/domain/availability"
	"github.com/parrillasur/reservabot/pkg/logger"
)

// PostgresSlotRepository es la implementación de availability.Repository
// sobre PostgreSQL
type PostgresSlotRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

// NewPostgresSlotRepository crea una nueva instancia del repositorio de slots
func NewPostgresSlotRepository(db *pgxpool.Pool, log logger.Logger) availability.Repository {
	return &PostgresSlotRepository{
		db:  db,
		log: log,
	}
}

const slotColumns = `id, to_char(slot_date, 'YYYY-MM-DD'), slot_time, sector, capacity, reserved_name, reserved_contact`

// ListOpenSlots retorna los slots libres para una fecha
func (r *PostgresSlotRepository) ListOpenSlots(ctx context.Context, date string) ([]availability.Slot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM slots
		WHERE slot_date = $1 AND reserved_name = ''
	`, slotColumns)

	return r.querySlots(ctx, query, date)
}

// ListByDate retorna todos los slots de una fecha, incluidos los reservados
func (r *PostgresSlotRepository) ListByDate(ctx context.Context, date string) ([]availability.Slot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM slots
		WHERE slot_date = $1
		ORDER BY slot_time, sector
	`, slotColumns)

	return r.querySlots(ctx, query, date)
}

func (r *PostgresSlotRepository) querySlots(ctx context.Context, query, date string) ([]availability.Slot, error) {
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("error al consultar slots: %w", err)
	}
	defer rows.Close()

	var slots []availability.Slot
	for rows.Next() {
		var s availability.Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.Time, &s.Sector, &s.Capacity, &s.ReservedName, &s.ReservedContact); err != nil {
			return nil, fmt.Errorf("error al leer slot: %w", err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al leer filas: %w", err)
	}

	return slots, nil
}

// Create registra un nuevo slot reservable
func (r *PostgresSlotRepository) Create(ctx context.Context, slot *availability.Slot) error {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO slots (id, slot_date, slot_time, sector, capacity)
		VALUES ($1, $2, $3, $4, $5)
	`, slot.ID, slot.Date, slot.Time, slot.Sector, slot.Capacity)

	if err != nil {
		return fmt.Errorf("error al crear slot: %w", err)
	}

	return nil
}

// Commit ocupa el slot que coincide con fecha/hora/sector. La ocupación se
// verifica de nuevo en la escritura: el UPDATE es condicional a que
// reserved_name siga vacío, así otra reserva concurrente no se pisa.
func (r *PostgresSlotRepository) Commit(ctx context.Context, date, hour, sector, name, contact string) (*availability.Confirmation, error) {
	// Localizar el slot pedido releyendo la disponibilidad actual; el
	// resultado de un listado previo del llamador ya puede estar viejo
	open, err := r.ListOpenSlots(ctx, date)
	if err != nil {
		return nil, err
	}

	var target *availability.Slot
	for i := range open {
		if open[i].Matches(hour, sector) {
			target = &open[i]
			break
		}
	}

	if target == nil {
		// Distinguir "nunca existió" de "existe pero ya lo ocuparon"
		taken, err := r.slotExists(ctx, date, hour, sector)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, availability.ErrSlotTaken
		}
		return nil, availability.ErrSlotNotFound
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE slots
		SET reserved_name = $2, reserved_contact = $3, updated_at = NOW()
		WHERE id = $1 AND reserved_name = ''
	`, target.ID, name, contact)
	if err != nil {
		return nil, fmt.Errorf("error al escribir reserva: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Otro commit llegó primero entre la lectura y la escritura
		r.log.Warn("Slot ocupado entre lectura y escritura", "slot_id", target.ID, "date", date, "hour", hour, "sector", sector)
		return nil, availability.ErrSlotTaken
	}

	booked := *target
	booked.ReservedName = name
	booked.ReservedContact = contact

	return &availability.Confirmation{
		OperationID: uuid.New().String(),
		Slot:        booked,
	}, nil
}

// slotExists indica si existe un slot (libre u ocupado) para la
// combinación pedida
func (r *PostgresSlotRepository) slotExists(ctx context.Context, date, hour, sector string) (bool, error) {
	all, err := r.ListByDate(ctx, date)
	if err != nil {
		return false, err
	}
	for _, s := range all {
		if s.Matches(hour, sector) {
			return true, nil
		}
	}
	return false, nil
}
