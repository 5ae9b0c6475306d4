package memory

import (
	"context"
	"fmt"
	"sort"

	"clinic-management/internal/domain/treatments"
)

type treatmentRepo struct {
	s *Store
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[t.AppointID]; !ok {
		return 0, fmt.Errorf("%w: appointment %d", ErrForeignKey, t.AppointID)
	}

	r.s.lastTreatment++
	t.ID = r.s.lastTreatment
	r.s.treatments[t.ID] = t
	return t.ID, nil
}

func (r *treatmentRepo) ListViews(ctx context.Context) ([]treatments.View, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]treatments.View, 0, len(r.s.treatments))
	for _, t := range r.s.treatments {
		a := r.s.appointments[t.AppointID]
		out = append(out, treatments.View{
			ID:          t.ID,
			AppointID:   t.AppointID,
			ServiceName: t.ServiceName,
			Cost:        t.Cost,
			AppointDate: a.Date,
			Patient:     r.s.patients[a.PatientID].Name,
			Doctor:      r.s.doctors[a.DoctorID].FirstName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
