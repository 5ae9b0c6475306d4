package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/platform/database"
)

type AppointmentsRepo struct {
	db *database.DB
}

func NewAppointmentsRepo(db *database.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) (int64, error) {
	return r.db.InsertID(ctx, "appoint_id", `
		INSERT INTO appointments (patient_id, doctor_id, appoint_date, status)
		VALUES (?, ?, ?, ?)`,
		a.PatientID,
		a.DoctorID,
		a.Date.Format(appointments.DateLayout),
		string(a.Status),
	)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT appoint_id, patient_id, doctor_id, appoint_date, status
		FROM appointments
		WHERE appoint_id = ?
	`, id)

	var (
		a      appointments.Appointment
		date   string
		status string
	)
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &date, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}

	d, err := parseDate(date)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.Date = d
	a.Status = appointments.Status(status)
	return a, nil
}

func (r *AppointmentsRepo) ListViews(ctx context.Context, filter appointments.ListFilter) ([]appointments.View, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "a.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.DoctorID > 0 {
		where = append(where, "a.doctor_id = ?")
		args = append(args, filter.DoctorID)
	}
	if filter.PatientID > 0 {
		where = append(where, "a.patient_id = ?")
		args = append(args, filter.PatientID)
	}
	// appoint_date es texto YYYY-MM-DD: el orden lexicográfico coincide con el cronológico.
	if filter.From != nil {
		where = append(where, "a.appoint_date >= ?")
		args = append(args, filter.From.Format(appointments.DateLayout))
	}
	if filter.To != nil {
		where = append(where, "a.appoint_date <= ?")
		args = append(args, filter.To.Format(appointments.DateLayout))
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			a.appoint_id, a.patient_id, a.doctor_id,
			p.name, d.first_name, d.specialty,
			a.appoint_date, a.status
		FROM appointments a
		JOIN patients p ON p.patient_id = a.patient_id
		JOIN doctors d ON d.doctor_id = a.doctor_id`)
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\n\t\tORDER BY a.appoint_date DESC, a.appoint_id DESC")
	if filter.Limit > 0 {
		sb.WriteString("\n\t\tLIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.View, 0)
	for rows.Next() {
		var (
			v      appointments.View
			date   string
			status string
		)
		if err := rows.Scan(
			&v.ID,
			&v.PatientID,
			&v.DoctorID,
			&v.Patient,
			&v.Doctor,
			&v.Specialty,
			&date,
			&status,
		); err != nil {
			return nil, err
		}

		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		v.Date = d
		v.Status = appointments.Status(status)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id int64, status appointments.Status) error {
	res, err := r.db.Exec(ctx,
		`UPDATE appointments SET status = ? WHERE appoint_id = ?`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(appointments.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appoint_date %q: %w", s, err)
	}
	return d, nil
}
