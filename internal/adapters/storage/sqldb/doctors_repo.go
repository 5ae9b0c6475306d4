package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/platform/database"
)

type DoctorsRepo struct {
	db *database.DB
}

func NewDoctorsRepo(db *database.DB) *DoctorsRepo {
	return &DoctorsRepo{db: db}
}

func (r *DoctorsRepo) Create(ctx context.Context, d doctors.Doctor) (int64, error) {
	return r.db.InsertID(ctx, "doctor_id", `
		INSERT INTO doctors (first_name, specialty, hourly_rate)
		VALUES (?, ?, ?)`,
		d.FirstName,
		d.Specialty,
		d.HourlyRate,
	)
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id int64) (doctors.Doctor, error) {
	row := r.db.QueryRow(ctx, `
		SELECT doctor_id, first_name, specialty, hourly_rate
		FROM doctors
		WHERE doctor_id = ?
	`, id)

	var d doctors.Doctor
	if err := row.Scan(&d.ID, &d.FirstName, &d.Specialty, &d.HourlyRate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doctors.Doctor{}, doctors.ErrNotFound
		}
		return doctors.Doctor{}, err
	}
	return d, nil
}

func (r *DoctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT doctor_id, first_name, specialty, hourly_rate
		FROM doctors
		ORDER BY doctor_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctors.Doctor, 0)
	for rows.Next() {
		var d doctors.Doctor
		if err := rows.Scan(&d.ID, &d.FirstName, &d.Specialty, &d.HourlyRate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
