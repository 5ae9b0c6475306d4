// Package seed carga un set chico de datos de ejemplo a través de los servicios.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/domain/patients"
	"clinic-management/internal/domain/treatments"
	"clinic-management/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// ErrAlreadySeeded: ya hay médicos cargados y no se pidió Force.
var ErrAlreadySeeded = errors.New("database already has doctors (use --force to seed anyway)")

type Data struct {
	Doctors      []DoctorRow      `yaml:"doctors"`
	Patients     []PatientRow     `yaml:"patients"`
	Appointments []AppointmentRow `yaml:"appointments"`
	Treatments   []TreatmentRow   `yaml:"treatments"`
}

type DoctorRow struct {
	FirstName  string  `yaml:"first_name"`
	Specialty  string  `yaml:"specialty"`
	HourlyRate float64 `yaml:"hourly_rate"`
}

type PatientRow struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

// AppointmentRow referencia paciente y médico por posición (1..n) en Data.
type AppointmentRow struct {
	Patient int    `yaml:"patient"`
	Doctor  int    `yaml:"doctor"`
	Date    string `yaml:"date"`
	Status  string `yaml:"status"`
}

type TreatmentRow struct {
	Appointment int     `yaml:"appointment"`
	ServiceName string  `yaml:"service_name"`
	Cost        float64 `yaml:"cost"`
}

// Sample devuelve el set embebido.
func Sample() (Data, error) {
	return Parse(sampleYAML)
}

func Parse(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("parse seed data: %w", err)
	}
	return d, nil
}

// Services son los servicios de dominio que usa el seed.
type Services struct {
	Doctors      *doctors.Service
	Patients     *patients.Service
	Appointments *appointments.Service
	Treatments   *treatments.Service
}

type Options struct {
	Force  bool
	Logger logger.Logger
}

// Report cuenta lo insertado por entidad.
type Report struct {
	Doctors      int
	Patients     int
	Appointments int
	Treatments   int
}

// Run inserta data en orden (médicos, pacientes, turnos, tratamientos).
// No es transaccional: si falla a mitad, lo insertado queda.
func Run(ctx context.Context, svc Services, data Data, opts Options) (Report, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if !opts.Force {
		existing, err := svc.Doctors.List(ctx)
		if err != nil {
			return Report{}, err
		}
		if len(existing) > 0 {
			return Report{}, ErrAlreadySeeded
		}
	}

	var rep Report

	doctorIDs := make([]int64, 0, len(data.Doctors))
	for _, row := range data.Doctors {
		d, err := svc.Doctors.Create(ctx, doctors.CreateInput{
			FirstName:  row.FirstName,
			Specialty:  row.Specialty,
			HourlyRate: row.HourlyRate,
		})
		if err != nil {
			return rep, fmt.Errorf("seed doctor %q: %w", row.FirstName, err)
		}
		doctorIDs = append(doctorIDs, d.ID)
		rep.Doctors++
	}

	patientIDs := make([]int64, 0, len(data.Patients))
	for _, row := range data.Patients {
		p, err := svc.Patients.Register(ctx, patients.RegisterInput{Name: row.Name, Phone: row.Phone})
		if err != nil {
			return rep, fmt.Errorf("seed patient %q: %w", row.Name, err)
		}
		patientIDs = append(patientIDs, p.ID)
		rep.Patients++
	}

	apptIDs := make([]int64, 0, len(data.Appointments))
	for i, row := range data.Appointments {
		patientID, err := ref(patientIDs, row.Patient)
		if err != nil {
			return rep, fmt.Errorf("seed appointment #%d patient: %w", i+1, err)
		}
		doctorID, err := ref(doctorIDs, row.Doctor)
		if err != nil {
			return rep, fmt.Errorf("seed appointment #%d doctor: %w", i+1, err)
		}
		date, err := time.Parse(appointments.DateLayout, row.Date)
		if err != nil {
			return rep, fmt.Errorf("seed appointment #%d date %q: %w", i+1, row.Date, err)
		}

		a, err := svc.Appointments.Book(ctx, appointments.BookInput{
			PatientID: patientID,
			DoctorID:  doctorID,
			Date:      date,
			Status:    row.Status,
		})
		if err != nil {
			return rep, fmt.Errorf("seed appointment #%d: %w", i+1, err)
		}
		apptIDs = append(apptIDs, a.ID)
		rep.Appointments++
	}

	for i, row := range data.Treatments {
		apptID, err := ref(apptIDs, row.Appointment)
		if err != nil {
			return rep, fmt.Errorf("seed treatment #%d appointment: %w", i+1, err)
		}
		if _, err := svc.Treatments.Record(ctx, treatments.RecordInput{
			AppointID:   apptID,
			ServiceName: row.ServiceName,
			Cost:        row.Cost,
		}); err != nil {
			return rep, fmt.Errorf("seed treatment #%d: %w", i+1, err)
		}
		rep.Treatments++
	}

	log.Info("seed completed", map[string]any{
		"doctors":      rep.Doctors,
		"patients":     rep.Patients,
		"appointments": rep.Appointments,
		"treatments":   rep.Treatments,
	})
	return rep, nil
}

func ref(ids []int64, pos int) (int64, error) {
	if pos < 1 || pos > len(ids) {
		return 0, fmt.Errorf("reference %d out of range (1..%d)", pos, len(ids))
	}
	return ids[pos-1], nil
}
