package dto

// WebhookEnvelope es el cuerpo que envía la Cloud API de WhatsApp en cada
// notificación. Solo se mapean los campos que el bot consume.
type WebhookEnvelope struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry es una entrada de la notificación
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange es un cambio dentro de una entrada
type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue contiene los mensajes de la notificación
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

// WebhookMessage es un mensaje entrante de un cliente
type WebhookMessage struct {
	From      string      `json:"from"`
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Type      string      `json:"type"`
	Text      WebhookText `json:"text"`
}

// WebhookText es el cuerpo de texto de un mensaje
type WebhookText struct {
	Body string `json:"body"`
}
