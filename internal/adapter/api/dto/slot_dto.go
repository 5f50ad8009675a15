package dto

import "github.com/parrillasur/reservabot/internal/domain/availability"

// SlotRequest representa los datos para crear un slot de disponibilidad
type SlotRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // hora entera, ej: "21"
	Sector   string `json:"sector" binding:"required"`
	Capacity int    `json:"capacity"`
}

// SlotResponse representa un slot en las respuestas de la API
type SlotResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Sector          string `json:"sector"`
	Capacity        int    `json:"capacity"`
	ReservedName    string `json:"reserved_name,omitempty"`
	ReservedContact string `json:"reserved_contact,omitempty"`
	Free            bool   `json:"free"`
}

// DaySummaryResponse resume la ocupación de una fecha
type DaySummaryResponse struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	Free     int            `json:"free"`
	Reserved int            `json:"reserved"`
	Slots    []SlotResponse `json:"slots"`
}

// ToSlotResponse convierte un slot de dominio a la respuesta de la API
func ToSlotResponse(s availability.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		Date:            s.Date,
		Time:            s.Time,
		Sector:          s.Sector,
		Capacity:        s.Capacity,
		ReservedName:    s.ReservedName,
		ReservedContact: s.ReservedContact,
		Free:            s.Free(),
	}
}

// ToSlotResponses convierte una lista de slots de dominio
func ToSlotResponses(slots []availability.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, ToSlotResponse(s))
	}
	return out
}
