package reservation

// Draft es la reserva en construcción de una conversación. Los campos se
// completan turno a turno con lo que el cliente va informando.
type Draft struct {
	Name    string `json:"name"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"`
	Sector  string `json:"sector"`
	People  int    `json:"people"`
	Contact string `json:"contact"`

	// AwaitingConfirmation es true solo cuando los cinco campos
	// requeridos están completos y ya se presentó el resumen
	AwaitingConfirmation bool `json:"awaiting_confirmation"`
}

// Complete indica si los cinco campos requeridos están presentes,
// independientemente del estado de confirmación
func (d *Draft) Complete() bool {
	return d.Name != "" && d.Date != "" && d.Time != "" && d.Sector != "" && d.People > 0
}

// Missing retorna las etiquetas de los campos faltantes en el orden fijo
// de prioridad: nombre, fecha, hora, personas, sector
func (d *Draft) Missing() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "tu nombre")
	}
	if d.Date == "" {
		missing = append(missing, "la fecha")
	}
	if d.Time == "" {
		missing = append(missing, "la hora")
	}
	if d.People <= 0 {
		missing = append(missing, "la cantidad de personas")
	}
	if d.Sector == "" {
		missing = append(missing, "el sector (Interior o Terraza)")
	}
	return missing
}
