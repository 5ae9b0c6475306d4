package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)
	// ListViews ordena por appoint_date DESC, appoint_id DESC.
	ListViews(ctx context.Context, filter ListFilter) ([]View, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// ListFilter: campos vacíos no filtran. Limit <= 0 = sin límite.
type ListFilter struct {
	Status    Status
	DoctorID  int64
	PatientID int64
	From      *time.Time
	To        *time.Time
	Limit     int
}
