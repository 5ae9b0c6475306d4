package doctors

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
	ErrNotFound     = errors.New("doctor not found")
)

const (
	MaxNameLen = 50

	EventCreated = "doctor.created"
)

type Service struct {
	repo Repository
	pub  notify.Publisher
}

func NewService(repo Repository, pub notify.Publisher) *Service {
	return &Service{repo: repo, pub: pub}
}

type CreateInput struct {
	FirstName  string
	Specialty  string
	HourlyRate float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Doctor, error) {
	d := Doctor{
		FirstName:  strings.TrimSpace(in.FirstName),
		Specialty:  strings.TrimSpace(in.Specialty),
		HourlyRate: in.HourlyRate,
	}

	if d.FirstName == "" || d.Specialty == "" {
		return Doctor{}, fmt.Errorf("%w: first name and specialty are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(d.FirstName) > MaxNameLen || utf8.RuneCountInString(d.Specialty) > MaxNameLen {
		return Doctor{}, fmt.Errorf("%w: first name and specialty must be at most %d characters", ErrInvalidInput, MaxNameLen)
	}
	if d.HourlyRate < 0 {
		return Doctor{}, fmt.Errorf("%w: hourly rate must be >= 0", ErrInvalidInput)
	}

	id, err := s.repo.Create(ctx, d)
	if err != nil {
		return Doctor{}, err
	}
	d.ID = id

	notify.Publish(s.pub, EventCreated, d)
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Doctor, error) {
	if id <= 0 {
		return Doctor{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	return s.repo.List(ctx)
}

// Choices arma las opciones "Dr. <nombre> - <especialidad>".
func (s *Service) Choices(ctx context.Context) ([]Choice, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Choice, 0, len(items))
	for _, d := range items {
		out = append(out, Choice{ID: d.ID, Label: d.Label()})
	}
	return out, nil
}

// Exists lo usan otros módulos (appointments) sin importar este paquete.
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
