package rules

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Rules contiene la configuración del restaurante y las políticas de reserva.
// El bot y los flujos la consumen en modo solo lectura.
type Rules struct {
	Restaurant Restaurant

	// Días de la semana en que el restaurante permanece cerrado
	ClosedDays []time.Weekday

	// Horarios válidos de reserva, expresados como hora entera ("20", "21", "22")
	ValidTimes []string

	// Sectores válidos del salón
	ValidSectors []string

	MaxPeople      int
	MaxAdvanceDays int

	// Cantidad máxima de turnos recordados por conversación
	MaxHistory int

	// Vocabularios de confirmación y negación (búsqueda por substring,
	// sin distinción de mayúsculas)
	ConfirmationWords []string
	NegationWords     []string

	// Ruta al archivo de base de conocimiento para preguntas frecuentes
	KnowledgeBasePath string

	Responses Responses
}

// Restaurant contiene los datos básicos del restaurante
type Restaurant struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Responses contiene las respuestas estándar del bot
type Responses struct {
	Greeting      string
	ClosedDay     string
	PastDate      string
	TooFarAhead   string // formato: %d días
	TooManyPeople string
	FullyBooked   string // formato: %s fecha
	Retry         string
	Restart       string
	InternalError string
	BookingFailed string
}

// Default devuelve las reglas por defecto del restaurante
func Default() *Rules {
	return &Rules{
		Restaurant: Restaurant{
			Name:    "La Parrilla del Sur",
			Address: "Av. San Martín 567, Palermo, Buenos Aires",
			Phone:   "+54 11 4567-8901",
			Email:   "reservas@laparrilladelsur.com",
		},
		ClosedDays:     []time.Weekday{time.Monday},
		ValidTimes:     []string{"20", "21", "22"},
		ValidSectors:   []string{"Interior", "Terraza"},
		MaxPeople:      8,
		MaxAdvanceDays: 14,
		MaxHistory:     20,
		ConfirmationWords: []string{
			"sí", "si", "confirmo", "dale", "ok", "de acuerdo",
			"correcto", "afirmativo", "confirmar", "vale",
		},
		NegationWords:     []string{"no"},
		KnowledgeBasePath: "config/faq-data.txt",
		Responses: Responses{
			Greeting:      "¡Hola! Bienvenido/a a La Parrilla del Sur 🍖 ¿En qué puedo ayudarte hoy?",
			ClosedDay:     "Los lunes permanecemos cerrados. Atendemos de martes a domingo.",
			PastDate:      "No podemos hacer reservas para fechas pasadas.",
			TooFarAhead:   "Solo aceptamos reservas hasta %d días de anticipación.",
			TooManyPeople: "El máximo por reserva es de 8 personas. Para grupos más grandes, por favor contactanos directamente al +54 11 4567-8901.",
			FullyBooked:   "Lamentablemente, ya no me queda disponibilidad para el %s. ¿Te gustaría que busquemos para otro día?",
			Retry:         "Perdón, no pude procesar tu mensaje. ¿Podrías intentarlo de nuevo?",
			Restart:       "¡Entendido! Empecemos de nuevo. ¿Qué necesitas?",
			InternalError: "Lo siento, estoy teniendo un problema interno. Por favor, intenta de nuevo.",
			BookingFailed: "No pude confirmar la reserva en este momento. ¿Querés que lo intentemos de nuevo?",
		},
	}
}

// FromEnv devuelve las reglas por defecto con los ajustes operativos
// tomados de variables de entorno cuando están presentes
func FromEnv() *Rules {
	r := Default()

	if v := os.Getenv("MAX_ADVANCE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.MaxAdvanceDays = n
		}
	}
	if v := os.Getenv("MAX_PEOPLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.MaxPeople = n
		}
	}
	if v := os.Getenv("MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.MaxHistory = n
		}
	}
	if v := os.Getenv("FAQ_FILE"); v != "" {
		r.KnowledgeBasePath = v
	}

	return r
}

// IsClosedDay indica si el restaurante está cerrado ese día de la semana
func (r *Rules) IsClosedDay(day time.Weekday) bool {
	for _, d := range r.ClosedDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsValidSector indica si el sector es uno de los sectores del salón
// (sin distinción de mayúsculas)
func (r *Rules) IsValidSector(sector string) bool {
	for _, s := range r.ValidSectors {
		if strings.EqualFold(s, sector) {
			return true
		}
	}
	return false
}

// ContextPrompt arma el bloque de contexto con las reglas del restaurante
// que se inyecta en los prompts de preguntas generales
func (r *Rules) ContextPrompt() string {
	var b strings.Builder

	b.WriteString("### INFORMACIÓN DEL RESTAURANTE\n")
	fmt.Fprintf(&b, "Nombre: %s\nDirección: %s\nTeléfono: %s\nEmail: %s\n", r.Restaurant.Name, r.Restaurant.Address, r.Restaurant.Phone, r.Restaurant.Email)

	b.WriteString("\n### HORARIOS Y DÍAS DE APERTURA\n")
	fmt.Fprintf(&b, "Días cerrados: %s\n", joinWeekdays(r.ClosedDays))
	fmt.Fprintf(&b, "Horarios de reserva: %s hs\n", strings.Join(r.ValidTimes, ", "))
	fmt.Fprintf(&b, "Sectores: %s\n", strings.Join(r.ValidSectors, ", "))

	b.WriteString("\n### POLÍTICAS DE RESERVA\n")
	fmt.Fprintf(&b, "- Máximo de personas por reserva: %d\n", r.MaxPeople)
	fmt.Fprintf(&b, "- Anticipación máxima: %d días\n", r.MaxAdvanceDays)

	return strings.TrimSpace(b.String())
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

func joinWeekdays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, weekdayNames[d])
	}
	return strings.Join(names, ", ")
}
