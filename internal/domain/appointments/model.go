package appointments

import (
	"fmt"
	"time"
)

// Appointment: los tags json son los del evento publicado en el feed en vivo.
type Appointment struct {
	ID        int64     `json:"appoint_id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	Date      time.Time `json:"appoint_date"`
	Status    Status    `json:"status"`
}

// View es la fila del listado: turno + nombres de paciente y médico.
type View struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	Patient   string
	Doctor    string
	Specialty string
	Date      time.Time
	Status    Status
}

// Label: "<fecha> - <paciente> with Dr. <médico>".
func (v View) Label() string {
	return fmt.Sprintf("%s - %s with Dr. %s", v.Date.Format(DateLayout), v.Patient, v.Doctor)
}

type Choice struct {
	ID    int64
	Label string
}
