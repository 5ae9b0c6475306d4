package memory

import (
	"context"
	"sort"

	"clinic-management/internal/domain/doctors"
)

type doctorRepo struct {
	s *Store
}

func (r *doctorRepo) Create(ctx context.Context, d doctors.Doctor) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastDoctor++
	d.ID = r.s.lastDoctor
	r.s.doctors[d.ID] = d
	return d.ID, nil
}

func (r *doctorRepo) GetByID(ctx context.Context, id int64) (doctors.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, nil
}

func (r *doctorRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]doctors.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
