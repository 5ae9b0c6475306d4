package doctors

import "fmt"

// Doctor es un médico de la clínica con su tarifa por hora.
type Doctor struct {
	ID         int64   `json:"doctor_id"`
	FirstName  string  `json:"first_name"`
	Specialty  string  `json:"specialty"`
	HourlyRate float64 `json:"hourly_rate"`
}

// Label es el texto que se muestra en los selectores de turnos.
func (d Doctor) Label() string {
	return fmt.Sprintf("Dr. %s - %s", d.FirstName, d.Specialty)
}

// Choice es una opción id/label para formularios.
type Choice struct {
	ID    int64
	Label string
}
