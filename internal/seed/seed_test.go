package seed_test

import (
	"context"
	"path/filepath"
	"testing"

	"clinic-management/internal/config"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/router"
	"clinic-management/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedServices(s router.Services) seed.Services {
	return seed.Services{
		Doctors:      s.Doctors,
		Patients:     s.Patients,
		Appointments: s.Appointments,
		Treatments:   s.Treatments,
	}
}

func TestSample_IsConsistent(t *testing.T) {
	data, err := seed.Sample()
	require.NoError(t, err)

	require.NotEmpty(t, data.Doctors)
	require.NotEmpty(t, data.Patients)
	require.NotEmpty(t, data.Appointments)
	require.NotEmpty(t, data.Treatments)

	for _, a := range data.Appointments {
		assert.True(t, a.Patient >= 1 && a.Patient <= len(data.Patients), "patient ref %d", a.Patient)
		assert.True(t, a.Doctor >= 1 && a.Doctor <= len(data.Doctors), "doctor ref %d", a.Doctor)
	}
	for _, tr := range data.Treatments {
		assert.True(t, tr.Appointment >= 1 && tr.Appointment <= len(data.Appointments), "appointment ref %d", tr.Appointment)
	}
}

func TestRun_InMemory(t *testing.T) {
	ctx := context.Background()
	svcs := router.NewServices(router.ServicesOptions{})
	data, err := seed.Sample()
	require.NoError(t, err)

	rep, err := seed.Run(ctx, seedServices(svcs), data, seed.Options{})
	require.NoError(t, err)
	assert.Equal(t, seed.Report{
		Doctors:      len(data.Doctors),
		Patients:     len(data.Patients),
		Appointments: len(data.Appointments),
		Treatments:   len(data.Treatments),
	}, rep)

	list, err := svcs.Treatments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(data.Treatments))

	// Segunda vez sin force: se niega.
	_, err = seed.Run(ctx, seedServices(svcs), data, seed.Options{})
	assert.ErrorIs(t, err, seed.ErrAlreadySeeded)

	// Con force: duplica.
	_, err = seed.Run(ctx, seedServices(svcs), data, seed.Options{Force: true})
	require.NoError(t, err)
	docs, err := svcs.Doctors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2*len(data.Doctors))
}

func TestRun_BadReference(t *testing.T) {
	data, err := seed.Parse([]byte(`
doctors:
  - {first_name: Ana, specialty: GP, hourly_rate: 10}
patients:
  - {name: Luis, phone: "1"}
appointments:
  - {patient: 2, doctor: 1, date: "2025-01-02"}
`))
	require.NoError(t, err)

	svcs := router.NewServices(router.ServicesOptions{})
	rep, err := seed.Run(context.Background(), seedServices(svcs), data, seed.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Equal(t, 1, rep.Doctors)
	assert.Equal(t, 0, rep.Appointments)
}

func TestRun_SQLite(t *testing.T) {
	dsn := config.SQLiteDSN(filepath.Join(t.TempDir(), "clinic.db"))
	_, err := database.MigrateUp(config.DriverSQLite, dsn)
	require.NoError(t, err)

	db, err := database.Open(config.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svcs := router.NewServices(router.ServicesOptions{DB: db})
	data, err := seed.Sample()
	require.NoError(t, err)

	_, err = seed.Run(context.Background(), seedServices(svcs), data, seed.Options{})
	require.NoError(t, err)

	res, err := svcs.Console.Run(context.Background(), "SELECT COUNT(*) AS n FROM appointments WHERE status = 'Scheduled'")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 3, res.Rows[0][0])
}

func TestParse_Invalid(t *testing.T) {
	_, err := seed.Parse([]byte("doctors: [\n"))
	assert.Error(t, err)
}
