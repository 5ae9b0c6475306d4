package memory

import (
	"context"
	"sort"

	"clinic-management/internal/domain/patients"
)

type patientRepo struct {
	s *Store
}

func (r *patientRepo) Create(ctx context.Context, p patients.Patient) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastPatient++
	p.ID = r.s.lastPatient
	r.s.patients[p.ID] = p
	return p.ID, nil
}

func (r *patientRepo) GetByID(ctx context.Context, id int64) (patients.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.patients[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *patientRepo) List(ctx context.Context) ([]patients.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]patients.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		out = append(out, p)
	}
	// Últimos registrados primero
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
