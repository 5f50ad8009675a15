package conversation

import (
	"context"
	"errors"
)

// Intent es una de las intenciones del vocabulario cerrado del bot
type Intent string

const (
	IntentReservar     Intent = "RESERVAR"
	IntentConfirmar    Intent = "CONFIRMAR"
	IntentCancelar     Intent = "CANCELAR_ACCION"
	IntentPreguntarFAQ Intent = "PREGUNTAR_FAQ"
	IntentSaludo       Intent = "SALUDO"
	IntentDespedida    Intent = "DESPEDIDA"
	IntentOtro         Intent = "OTRO"
)

// Intents es el conjunto cerrado de intenciones válidas
var Intents = []Intent{
	IntentReservar, IntentConfirmar, IntentCancelar,
	IntentPreguntarFAQ, IntentSaludo, IntentDespedida, IntentOtro,
}

// ValidIntent indica si la etiqueta pertenece al vocabulario cerrado
func ValidIntent(label Intent) bool {
	for _, i := range Intents {
		if i == label {
			return true
		}
	}
	return false
}

// ErrExtractionFailed es retornado cuando la capacidad de extracción
// devuelve una respuesta malformada o no interpretable
var ErrExtractionFailed = errors.New("respuesta de extracción malformada")

// Extraction es el resultado tipado de la extracción de datos de reserva.
// Todo campo puede venir vacío: un campo ausente significa "sin información
// nueva", nunca "borrar este campo".
type Extraction struct {
	IsReservation bool   `json:"isReservation"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Sector        string `json:"sector"`
	People        int    `json:"people"`
}

// Classifier clasifica un mensaje dentro del vocabulario cerrado de
// intenciones. Una etiqueta fuera del vocabulario se degrada a OTRO.
type Classifier interface {
	Classify(ctx context.Context, text string) (Intent, error)
}

// Extractor convierte texto libre en campos candidatos de reserva
type Extractor interface {
	Extract(ctx context.Context, text string, history []Turn) (*Extraction, error)
}

// Responder genera una respuesta en lenguaje natural a partir de un prompt
// de sistema, el historial y el mensaje del usuario
type Responder interface {
	Reply(ctx context.Context, system string, history []Turn, text string) (string, error)
}
