package conversation

// Roles de los turnos de una conversación
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn es un turno del historial de una conversación
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
