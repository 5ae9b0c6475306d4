package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-management/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")

	ErrUnknownPatient = fmt.Errorf("%w: patient does not exist", ErrInvalidInput)
	ErrUnknownDoctor  = fmt.Errorf("%w: doctor does not exist", ErrInvalidInput)
)

const (
	DefaultLimit = 100
	MaxLimit     = 500

	EventBooked        = "appointment.booked"
	EventStatusChanged = "appointment.status_changed"
)

// ExistenceChecker evita importar patients/doctors (rompe ciclos).
type ExistenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo     Repository
	patients ExistenceChecker
	doctors  ExistenceChecker
	pub      notify.Publisher
}

func NewService(repo Repository, patients, doctors ExistenceChecker, pub notify.Publisher) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		pub:      pub,
	}
}

type BookInput struct {
	PatientID int64
	DoctorID  int64
	Date      time.Time
	Status    string // opcional, default Scheduled
}

func (s *Service) Book(ctx context.Context, in BookInput) (Appointment, error) {
	if in.PatientID <= 0 || in.DoctorID <= 0 {
		return Appointment{}, fmt.Errorf("%w: patient and doctor are required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Appointment{}, fmt.Errorf("%w: appointment date is required", ErrInvalidInput)
	}

	status := StatusScheduled
	if in.Status != "" {
		st, ok := ParseStatus(in.Status)
		if !ok {
			return Appointment{}, fmt.Errorf("%w: status must be Scheduled, Completed or Cancelled", ErrInvalidInput)
		}
		status = st
	}

	if err := s.mustExist(ctx, s.patients, in.PatientID, ErrUnknownPatient); err != nil {
		return Appointment{}, err
	}
	if err := s.mustExist(ctx, s.doctors, in.DoctorID, ErrUnknownDoctor); err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      truncateDay(in.Date),
		Status:    status,
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	a.ID = id

	notify.Publish(s.pub, EventBooked, a)
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Appointment, error) {
	if id <= 0 {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List aplica el límite por defecto/máximo del listado HTTP.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]View, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	return s.repo.ListViews(ctx, filter)
}

// Choices lista todos los turnos como "<fecha> - <paciente> with Dr. <médico>".
func (s *Service) Choices(ctx context.Context) ([]Choice, error) {
	items, err := s.repo.ListViews(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]Choice, 0, len(items))
	for _, v := range items {
		out = append(out, Choice{ID: v.ID, Label: v.Label()})
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Appointment, error) {
	st, ok := ParseStatus(status)
	if !ok {
		return Appointment{}, fmt.Errorf("%w: status must be Scheduled, Completed or Cancelled", ErrInvalidInput)
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if current.Status == st {
		return current, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return Appointment{}, err
	}
	current.Status = st

	notify.Publish(s.pub, EventStatusChanged, current)
	return current, nil
}

// Exists lo usa treatments.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) mustExist(ctx context.Context, c ExistenceChecker, id int64, notFound error) error {
	if c == nil {
		return nil
	}
	ok, err := c.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}
