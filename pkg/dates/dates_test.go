package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrillasur/reservabot/pkg/rules"
)

// martes 1 de julio de 2025
var today = time.Date(2025, time.July, 1, 15, 30, 0, 0, time.UTC)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"canonica pasa tal cual", "2025-07-10", "2025-07-10"},
		{"hoy", "hoy", "2025-07-01"},
		{"esta noche", "esta noche", "2025-07-01"},
		{"mañana", "mañana", "2025-07-02"},
		{"para mañana", "para mañana", "2025-07-02"},
		{"pasado mañana", "pasado mañana", "2025-07-03"},
		{"proximo viernes", "próximo viernes", "2025-07-04"},
		{"proximo sin tilde", "proximo viernes", "2025-07-04"},
		{"proximo mismo dia salta una semana", "próximo martes", "2025-07-08"},
		{"dia y mes", "2 de julio", "2025-07-02"},
		{"dia y mes sin de", "2 julio", "2025-07-02"},
		{"dia y mes ya pasado va al año siguiente", "15 de enero", "2026-01-15"},
		{"con relleno", "para el 2 de julio", "2025-07-02"},
		{"dd/mm", "15/07", "2025-07-15"},
		{"dd/mm ya pasado va al año siguiente", "01/03", "2026-03-01"},
		{"dd/mm/yyyy", "15/07/2025", "2025-07-15"},
		{"dd-mm-yy", "15-07-25", "2025-07-15"},
		{"yyyy/mm/dd", "2025/07/15", "2025-07-15"},
		{"mes invalido pasa tal cual", "15/13/2025", "15/13/2025"},
		{"no interpretable pasa tal cual", "cuando pueda", "cuando pueda"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in, today))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first := Normalize("mañana", today)
	assert.Equal(t, first, Normalize(first, today))
}

func TestValidate(t *testing.T) {
	r := rules.Default()

	cases := []struct {
		name   string
		date   string
		reason Reason
	}{
		{"lunes cerrado", "2025-07-07", ReasonClosedDay},
		{"fecha pasada", "2025-06-29", ReasonPastDate},
		{"demasiado lejos", "2025-07-16", ReasonTooFarAhead},
		{"no canonica", "mañana", ReasonInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.date, today, r)
			require.NotNil(t, err)
			assert.Equal(t, tc.reason, err.Reason)
			assert.NotEmpty(t, err.Message)
		})
	}

	assert.Nil(t, Validate("2025-07-02", today, r), "mañana es reservable")
	assert.Nil(t, Validate("2025-07-01", today, r), "hoy es reservable")
	assert.Nil(t, Validate("2025-07-15", today, r), "el último día de la ventana es reservable")
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "hoy", FormatForDisplay("2025-07-01", today))
	assert.Equal(t, "mañana", FormatForDisplay("2025-07-02", today))
	assert.Equal(t, "15/07/2025", FormatForDisplay("2025-07-15", today))
	assert.Equal(t, "no-fecha", FormatForDisplay("no-fecha", today))
}
