package availability

import (
	"strconv"
	"strings"
)

// Slot representa una unidad reservable (fecha, hora, sector) con su
// capacidad y su ocupación. El almacén de slots es la fuente de verdad
// de todo el sistema.
type Slot struct {
	ID              string `json:"id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // hora de reserva, ej: "21"
	Sector          string `json:"sector"`
	Capacity        int    `json:"capacity"`
	ReservedName    string `json:"reserved_name,omitempty"`
	ReservedContact string `json:"reserved_contact,omitempty"`
}

// Free indica si el slot está libre (sin nombre de reserva)
func (s Slot) Free() bool {
	return strings.TrimSpace(s.ReservedName) == ""
}

// Matches indica si el slot corresponde a la hora y sector pedidos.
// La hora se compara numéricamente ("21" == "21:00") y el sector sin
// distinción de mayúsculas.
func (s Slot) Matches(hour, sector string) bool {
	return SameHour(s.Time, hour) && strings.EqualFold(s.Sector, sector)
}

// Confirmation contiene los detalles de una reserva confirmada
type Confirmation struct {
	OperationID string
	Slot        Slot
}

// SameHour compara dos horas en forma numérica, ignorando el formato
// textual ("21", "21:00" y "21 hs" son equivalentes)
func SameHour(a, b string) bool {
	ha, okA := Hour(a)
	hb, okB := Hour(b)
	return okA && okB && ha == hb
}

// Hour extrae la hora numérica de una etiqueta de horario
func Hour(v string) (int, bool) {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	h, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0, false
	}
	return h, true
}
