package memory

import (
	"errors"
	"sync"

	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/domain/patients"
	"clinic-management/internal/domain/treatments"
)

// ErrForeignKey imita la restricción de la base: la fila referida no existe.
var ErrForeignKey = errors.New("foreign key constraint failed")

// Store guarda las cuatro tablas en memoria (modo dev / tests).
// Todas las vistas comparten el mismo lock, como si fuera una sola base.
type Store struct {
	mu sync.RWMutex

	doctors      map[int64]doctors.Doctor
	patients     map[int64]patients.Patient
	appointments map[int64]appointments.Appointment
	treatments   map[int64]treatments.Treatment

	// Autoincrementales; nunca se reusan.
	lastDoctor, lastPatient, lastAppoint, lastTreatment int64
}

func NewStore() *Store {
	return &Store{
		doctors:      make(map[int64]doctors.Doctor),
		patients:     make(map[int64]patients.Patient),
		appointments: make(map[int64]appointments.Appointment),
		treatments:   make(map[int64]treatments.Treatment),
	}
}

func (s *Store) Doctors() doctors.Repository {
	return &doctorRepo{s: s}
}

func (s *Store) Patients() patients.Repository {
	return &patientRepo{s: s}
}

func (s *Store) Appointments() appointments.Repository {
	return &appointmentRepo{s: s}
}

func (s *Store) Treatments() treatments.Repository {
	return &treatmentRepo{s: s}
}
