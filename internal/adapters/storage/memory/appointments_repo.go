package memory

import (
	"context"
	"fmt"
	"sort"

	"clinic-management/internal/domain/appointments"
)

type appointmentRepo struct {
	s *Store
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.patients[a.PatientID]; !ok {
		return 0, fmt.Errorf("%w: patient %d", ErrForeignKey, a.PatientID)
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return 0, fmt.Errorf("%w: doctor %d", ErrForeignKey, a.DoctorID)
	}

	r.s.lastAppoint++
	a.ID = r.s.lastAppoint
	r.s.appointments[a.ID] = a
	return a.ID, nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) ListViews(ctx context.Context, filter appointments.ListFilter) ([]appointments.View, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.View, 0)
	for _, a := range r.s.appointments {
		if !matches(a, filter) {
			continue
		}
		p := r.s.patients[a.PatientID]
		d := r.s.doctors[a.DoctorID]
		out = append(out, appointments.View{
			ID:        a.ID,
			PatientID: a.PatientID,
			DoctorID:  a.DoctorID,
			Patient:   p.Name,
			Doctor:    d.FirstName,
			Specialty: d.Specialty,
			Date:      a.Date,
			Status:    a.Status,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id int64, status appointments.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.ErrNotFound
	}
	a.Status = status
	r.s.appointments[id] = a
	return nil
}

func matches(a appointments.Appointment, f appointments.ListFilter) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.DoctorID > 0 && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID > 0 && a.PatientID != f.PatientID {
		return false
	}
	if f.From != nil && a.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && a.Date.After(*f.To) {
		return false
	}
	return true
}
