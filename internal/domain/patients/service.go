package patients

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
	ErrNotFound     = errors.New("patient not found")
)

const (
	MaxNameLen  = 50
	MaxPhoneLen = 15

	EventRegistered = "patient.registered"
)

type Service struct {
	repo Repository
	pub  notify.Publisher
}

func NewService(repo Repository, pub notify.Publisher) *Service {
	return &Service{repo: repo, pub: pub}
}

type RegisterInput struct {
	Name  string
	Phone string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Patient, error) {
	p := Patient{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}

	if p.Name == "" || p.Phone == "" {
		return Patient{}, fmt.Errorf("%w: name and phone required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLen {
		return Patient{}, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, MaxNameLen)
	}
	if utf8.RuneCountInString(p.Phone) > MaxPhoneLen {
		return Patient{}, fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidInput, MaxPhoneLen)
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Patient{}, err
	}
	p.ID = id

	notify.Publish(s.pub, EventRegistered, p)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Patient, error) {
	if id <= 0 {
		return Patient{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Choices(ctx context.Context) ([]Choice, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Choice, 0, len(items))
	for _, p := range items {
		out = append(out, Choice{ID: p.ID, Label: p.Name})
	}
	return out, nil
}

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
