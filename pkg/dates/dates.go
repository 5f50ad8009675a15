// Package dates normaliza y valida expresiones de fecha en español
// ("mañana", "próximo viernes", "2 de julio", "15/07") hacia el formato
// canónico YYYY-MM-DD.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/parrillasur/reservabot/pkg/rules"
)

const canonicalLayout = "2006-01-02"

var (
	canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericPattern   = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})[/-](\d{1,4})$`)
	dayMonthNumeric  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
	dayMonthPattern  = regexp.MustCompile(`^(\d{1,2})\s+(?:de\s+)?([a-záéíóúñ]+)$`)
	fillerPattern    = regexp.MustCompile(`\b(el|la|para|del|en)\b`)
	spacesPattern    = regexp.MustCompile(`\s+`)
)

var monthNumbers = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,
}

var weekdayNumbers = map[string]time.Weekday{
	"domingo": time.Sunday, "sunday": time.Sunday,
	"lunes": time.Monday, "monday": time.Monday,
	"martes": time.Tuesday, "tuesday": time.Tuesday,
	"miércoles": time.Wednesday, "miercoles": time.Wednesday, "wednesday": time.Wednesday,
	"jueves": time.Thursday, "thursday": time.Thursday,
	"viernes": time.Friday, "friday": time.Friday,
	"sábado": time.Saturday, "sabado": time.Saturday, "saturday": time.Saturday,
	"domingos": time.Sunday,
}

// Normalize convierte una expresión de fecha a formato YYYY-MM-DD usando
// today como fecha de referencia. Una entrada ya canónica se devuelve tal
// cual; una entrada que no se puede interpretar también se devuelve sin
// cambios, y el llamador debe validarla antes de confiar en ella.
func Normalize(expression string, today time.Time) string {
	trimmed := strings.TrimSpace(expression)
	if canonicalPattern.MatchString(trimmed) {
		return trimmed
	}

	today = atMidnight(today)
	expr := strings.ToLower(trimmed)
	expr = fillerPattern.ReplaceAllString(expr, "")
	expr = strings.TrimSpace(spacesPattern.ReplaceAllString(expr, " "))

	// El orden importa: "pasado mañana" contiene "mañana"
	switch {
	case strings.Contains(expr, "pasado mañana") || strings.Contains(expr, "day after tomorrow"):
		return format(today.AddDate(0, 0, 2))
	case strings.Contains(expr, "mañana") || strings.Contains(expr, "tomorrow"):
		return format(today.AddDate(0, 0, 1))
	case strings.Contains(expr, "esta noche") || strings.Contains(expr, "tonight"):
		return format(today)
	case strings.Contains(expr, "hoy") || strings.Contains(expr, "today"):
		return format(today)
	case strings.Contains(expr, "próximo") || strings.Contains(expr, "proximo") ||
		strings.Contains(expr, "próxima") || strings.Contains(expr, "proxima") ||
		strings.Contains(expr, "next"):
		for name, day := range weekdayNumbers {
			if strings.Contains(expr, name) {
				return format(nextWeekday(today, day))
			}
		}
	}

	if m := dayMonthPattern.FindStringSubmatch(expr); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNumbers[m[2]]
		if ok {
			target := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
			// Si la fecha ya pasó este año, se asume el año siguiente
			if target.Before(today) {
				target = target.AddDate(1, 0, 0)
			}
			return format(target)
		}
	}

	// DD/MM sin año: se asume el año en curso, o el siguiente si ya pasó
	if m := dayMonthNumeric.FindStringSubmatch(expr); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			target := time.Date(today.Year(), time.Month(month), day, 0, 0, 0, 0, today.Location())
			if target.Before(today) {
				target = target.AddDate(1, 0, 0)
			}
			return format(target)
		}
		return trimmed
	}

	if m := numericPattern.FindStringSubmatch(expr); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		third, _ := strconv.Atoi(m[3])

		day, month, year := first, second, third
		// Si el primer grupo supera 31 el formato es YYYY/MM/DD
		if first > 31 {
			year, day = first, third
		}
		if year < 100 {
			year += 2000
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return trimmed
		}
		return format(time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location()))
	}

	return trimmed
}

// Reason identifica el motivo de rechazo de una fecha
type Reason string

const (
	ReasonClosedDay   Reason = "closed_day"
	ReasonPastDate    Reason = "past_date"
	ReasonTooFarAhead Reason = "too_far_ahead"
	ReasonInvalidDate Reason = "invalid_date"
)

// ValidationError describe por qué una fecha no es reservable. Message es
// el texto que se muestra al usuario.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// Validate verifica que una fecha canónica sea reservable según las reglas
// del restaurante. La comparación con today es a granularidad de día.
func Validate(date string, today time.Time, r *rules.Rules) *ValidationError {
	parsed, err := time.ParseInLocation(canonicalLayout, date, today.Location())
	if err != nil {
		return &ValidationError{
			Reason:  ReasonInvalidDate,
			Message: "No pude entender la fecha. ¿Podrías indicarme el día? Por ejemplo: \"mañana\" o \"15/08\".",
		}
	}

	today = atMidnight(today)

	if r.IsClosedDay(parsed.Weekday()) {
		return &ValidationError{Reason: ReasonClosedDay, Message: r.Responses.ClosedDay}
	}
	if parsed.Before(today) {
		return &ValidationError{Reason: ReasonPastDate, Message: r.Responses.PastDate}
	}
	if parsed.After(today.AddDate(0, 0, r.MaxAdvanceDays)) {
		return &ValidationError{
			Reason:  ReasonTooFarAhead,
			Message: fmt.Sprintf(r.Responses.TooFarAhead, r.MaxAdvanceDays),
		}
	}

	return nil
}

// FormatForDisplay devuelve la fecha en un formato amigable en español:
// "hoy", "mañana" o DD/MM/YYYY
func FormatForDisplay(date string, today time.Time) string {
	parsed, err := time.ParseInLocation(canonicalLayout, date, today.Location())
	if err != nil {
		return date
	}

	today = atMidnight(today)
	switch {
	case parsed.Equal(today):
		return "hoy"
	case parsed.Equal(today.AddDate(0, 0, 1)):
		return "mañana"
	}
	return parsed.Format("02/01/2006")
}

// nextWeekday devuelve la próxima ocurrencia estricta del día pedido;
// si hoy cae en ese día, salta una semana completa
func nextWeekday(today time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta)
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func format(t time.Time) string {
	return t.Format(canonicalLayout)
}
