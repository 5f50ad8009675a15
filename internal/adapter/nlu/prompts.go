package nlu

import (
	"fmt"
	"strings"
	"time"

	"github.com/parrillasur/reservabot/internal/domain/conversation"
)

// classifierPrompt es el prompt de sistema del clasificador de intenciones
func classifierPrompt() string {
	labels := make([]string, 0, len(conversation.Intents))
	for _, i := range conversation.Intents {
		labels = append(labels, string(i))
	}

	return fmt.Sprintf(`Tu única tarea es clasificar el mensaje del usuario en una de las siguientes categorías: %s. Responde únicamente con una de esas palabras en mayúsculas.

### Guía de Clasificación:
- RESERVAR: Si el mensaje contiene detalles de una reserva (fecha, hora, personas) o si el usuario está respondiendo a una pregunta sobre su reserva (ej: "para 4 personas").
- PREGUNTAR_FAQ: Para preguntas generales sobre el restaurante.
- CONFIRMAR: MUY IMPORTANTE: úsalo para afirmaciones cortas y directas como "sí", "dale", "ok", "correcto", "confirmo", "perfecto", especialmente si el mensaje anterior fue una pregunta de confirmación.
- CANCELAR_ACCION: Para negaciones como "no", "cancela".
- SALUDO: Para saludos simples como "hola".
- DESPEDIDA: Para despedidas como "gracias".
- OTRO: Si ninguna de las anteriores aplica.

### Ejemplos:
- User: "Quiero una mesa para 2" -> RESERVAR
- User: "para el viernes" -> RESERVAR
- User: "¿Abren los lunes?" -> PREGUNTAR_FAQ
- User: "sí" -> CONFIRMAR
- User: "dale confirmo" -> CONFIRMAR
- User: "no, mejor no" -> CANCELAR_ACCION`, strings.Join(labels, ", "))
}

// extractionPrompt es el prompt de sistema del extractor de datos de
// reserva. El modelo actúa como procesador de datos, no como chatbot.
func extractionPrompt(today time.Time) string {
	return fmt.Sprintf(`Tu única y más importante tarea es extraer datos de un texto y devolverlos SIEMPRE en formato JSON. Eres un procesador de datos, no un chatbot. No respondas de forma conversacional. NUNCA saludes ni hagas preguntas. Responde solo con el objeto JSON.

Current date: %s

La estructura del JSON debe ser la siguiente:
{
  "isReservation": boolean,
  "name": string,
  "date": string,
  "time": string,
  "sector": string,
  "people": number
}

### Reglas Críticas:
1. PRIORIDAD MÁXIMA: tu respuesta DEBE ser únicamente un objeto JSON válido. Nada más.
2. "isReservation": pon true si el usuario muestra cualquier intención de reservar (menciona "reserva", "mesa", una fecha, hora, o número de personas). Pon false para saludos, preguntas generales o cualquier otra cosa.
3. Campos vacíos: si no encuentras información para un campo, déjalo como un string vacío "" (o null para 'people'). NO inventes datos.
4. No confundir: "Hola" no es un nombre.

### Ejemplos:
- User: "Hola" -> {"isReservation": false, "name": "", "date": "", "time": "", "sector": "", "people": null}
- User: "quiero una mesa para mañana a las 9" -> {"isReservation": true, "name": "", "date": "mañana", "time": "21:00", "sector": "", "people": null}
- User: "para 2 en la terraza, me llamo juan" -> {"isReservation": true, "name": "juan", "date": "", "time": "", "sector": "Terraza", "people": 2}
- User: "perfecto entonces quiero hacer una reserva para mañana a las 21 horas" -> {"isReservation": true, "name": "", "date": "mañana", "time": "21:00", "sector": "", "people": null}`,
		today.Format("2006-01-02"))
}
