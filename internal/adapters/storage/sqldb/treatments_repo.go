package sqldb

import (
	"context"

	"clinic-management/internal/domain/treatments"
	"clinic-management/internal/platform/database"
)

type TreatmentsRepo struct {
	db *database.DB
}

func NewTreatmentsRepo(db *database.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) (int64, error) {
	return r.db.InsertID(ctx, "treatment_id", `
		INSERT INTO treatments (appoint_id, service_name, cost)
		VALUES (?, ?, ?)`,
		t.AppointID,
		t.ServiceName,
		t.Cost,
	)
}

func (r *TreatmentsRepo) ListViews(ctx context.Context) ([]treatments.View, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			t.treatment_id, t.appoint_id, t.service_name, t.cost,
			a.appoint_date, p.name, d.first_name
		FROM treatments t
		JOIN appointments a ON a.appoint_id = t.appoint_id
		JOIN patients p ON p.patient_id = a.patient_id
		JOIN doctors d ON d.doctor_id = a.doctor_id
		ORDER BY t.treatment_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.View, 0)
	for rows.Next() {
		var (
			v    treatments.View
			date string
		)
		if err := rows.Scan(
			&v.ID,
			&v.AppointID,
			&v.ServiceName,
			&v.Cost,
			&date,
			&v.Patient,
			&v.Doctor,
		); err != nil {
			return nil, err
		}

		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		v.AppointDate = d
		out = append(out, v)
	}
	return out, rows.Err()
}
