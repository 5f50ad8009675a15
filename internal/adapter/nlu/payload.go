package nlu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/parrillasur/reservabot/internal/domain/conversation"
)

// extractionPayload es la forma cruda del JSON que produce el modelo.
// El esquema no está garantizado: people puede venir como número, string
// o null, y el objeto puede llegar envuelto en fences de markdown.
type extractionPayload struct {
	IsReservation bool        `json:"isReservation"`
	Name          string      `json:"name"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Sector        string      `json:"sector"`
	People        interface{} `json:"people"`
}

// decodeExtraction interpreta defensivamente la respuesta del modelo.
// Una respuesta malformada retorna conversation.ErrExtractionFailed,
// nunca un pánico.
func decodeExtraction(raw string) (*conversation.Extraction, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: sin objeto JSON en %q", conversation.ErrExtractionFailed, truncate(raw, 80))
	}

	var payload extractionPayload
	if err := sonic.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", conversation.ErrExtractionFailed, err)
	}

	return &conversation.Extraction{
		IsReservation: payload.IsReservation,
		Name:          strings.TrimSpace(payload.Name),
		Date:          strings.TrimSpace(payload.Date),
		Time:          strings.TrimSpace(payload.Time),
		Sector:        strings.TrimSpace(payload.Sector),
		People:        coercePeople(payload.People),
	}, nil
}

// coercePeople acepta number, string numérica o null; cualquier otra cosa
// se trata como "sin información"
func coercePeople(v interface{}) int {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return int(n)
		}
	case string:
		if p, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && p > 0 {
			return p
		}
	}
	return 0
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
