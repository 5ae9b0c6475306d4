package treatments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"clinic-management/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownAppointment = fmt.Errorf("%w: appointment does not exist", ErrInvalidInput)
)

const (
	MaxServiceNameLen = 50

	EventRecorded = "treatment.recorded"
)

// AppointmentChecker evita importar appointments.
type AppointmentChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo         Repository
	appointments AppointmentChecker
	pub          notify.Publisher
}

func NewService(repo Repository, appointments AppointmentChecker, pub notify.Publisher) *Service {
	return &Service{repo: repo, appointments: appointments, pub: pub}
}

type RecordInput struct {
	AppointID   int64
	ServiceName string
	Cost        float64
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Treatment, error) {
	t := Treatment{
		AppointID:   in.AppointID,
		ServiceName: strings.TrimSpace(in.ServiceName),
		Cost:        in.Cost,
	}

	if t.AppointID <= 0 {
		return Treatment{}, fmt.Errorf("%w: appointment is required", ErrInvalidInput)
	}
	if t.ServiceName == "" {
		return Treatment{}, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(t.ServiceName) > MaxServiceNameLen {
		return Treatment{}, fmt.Errorf("%w: service name must be at most %d characters", ErrInvalidInput, MaxServiceNameLen)
	}
	if t.Cost < 0 {
		return Treatment{}, fmt.Errorf("%w: cost must be >= 0", ErrInvalidInput)
	}

	if s.appointments != nil {
		ok, err := s.appointments.Exists(ctx, t.AppointID)
		if err != nil {
			return Treatment{}, err
		}
		if !ok {
			return Treatment{}, ErrUnknownAppointment
		}
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return Treatment{}, err
	}
	t.ID = id

	notify.Publish(s.pub, EventRecorded, t)
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]View, error) {
	return s.repo.ListViews(ctx)
}
