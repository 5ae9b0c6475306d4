package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"clinic-management/internal/domain/patients"
	"clinic-management/internal/platform/database"
)

type PatientsRepo struct {
	db *database.DB
}

func NewPatientsRepo(db *database.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) (int64, error) {
	return r.db.InsertID(ctx, "patient_id",
		`INSERT INTO patients (name, phone) VALUES (?, ?)`,
		p.Name,
		p.Phone,
	)
}

func (r *PatientsRepo) GetByID(ctx context.Context, id int64) (patients.Patient, error) {
	var p patients.Patient
	err := r.db.QueryRow(ctx,
		`SELECT patient_id, name, phone FROM patients WHERE patient_id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

// List: últimos registrados primero.
func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.Query(ctx,
		`SELECT patient_id, name, phone FROM patients ORDER BY patient_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		var p patients.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
