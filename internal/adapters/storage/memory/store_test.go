package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/domain/patients"
	"clinic-management/internal/domain/treatments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_IDsAndOrdering(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	d1, err := s.Doctors().Create(ctx, doctors.Doctor{FirstName: "Gregory", Specialty: "Diagnostics"})
	require.NoError(t, err)
	d2, err := s.Doctors().Create(ctx, doctors.Doctor{FirstName: "James", Specialty: "Oncology"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d1)
	assert.Equal(t, int64(2), d2)

	docs, err := s.Doctors().List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, d1, docs[0].ID)

	p1, _ := s.Patients().Create(ctx, patients.Patient{Name: "Ana", Phone: "1"})
	p2, _ := s.Patients().Create(ctx, patients.Patient{Name: "Luis", Phone: "2"})

	pats, err := s.Patients().List(ctx)
	require.NoError(t, err)
	require.Len(t, pats, 2)
	assert.Equal(t, p2, pats[0].ID)
	assert.Equal(t, p1, pats[1].ID)

	_, err = s.Doctors().GetByID(ctx, 99)
	assert.True(t, errors.Is(err, doctors.ErrNotFound))
	_, err = s.Patients().GetByID(ctx, 99)
	assert.True(t, errors.Is(err, patients.ErrNotFound))
}

func TestStore_AppointmentsViewsAndFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	doc, _ := s.Doctors().Create(ctx, doctors.Doctor{FirstName: "Gregory", Specialty: "Diagnostics"})
	ana, _ := s.Patients().Create(ctx, patients.Patient{Name: "Ana", Phone: "1"})
	luis, _ := s.Patients().Create(ctx, patients.Patient{Name: "Luis", Phone: "2"})

	repo := s.Appointments()
	a1, err := repo.Create(ctx, appointments.Appointment{PatientID: ana, DoctorID: doc, Date: date(2025, 3, 10), Status: appointments.StatusScheduled})
	require.NoError(t, err)
	a2, _ := repo.Create(ctx, appointments.Appointment{PatientID: luis, DoctorID: doc, Date: date(2025, 3, 12), Status: appointments.StatusCompleted})
	a3, _ := repo.Create(ctx, appointments.Appointment{PatientID: ana, DoctorID: doc, Date: date(2025, 3, 12), Status: appointments.StatusScheduled})

	all, err := repo.ListViews(ctx, appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{a3, a2, a1}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Diagnostics", all[0].Specialty)

	scheduled, _ := repo.ListViews(ctx, appointments.ListFilter{Status: appointments.StatusScheduled, Limit: 1})
	require.Len(t, scheduled, 1)
	assert.Equal(t, a3, scheduled[0].ID)

	to := date(2025, 3, 11)
	early, _ := repo.ListViews(ctx, appointments.ListFilter{To: &to})
	require.Len(t, early, 1)
	assert.Equal(t, a1, early[0].ID)

	require.NoError(t, repo.UpdateStatus(ctx, a1, appointments.StatusCancelled))
	got, _ := repo.GetByID(ctx, a1)
	assert.Equal(t, appointments.StatusCancelled, got.Status)

	assert.True(t, errors.Is(repo.UpdateStatus(ctx, 42, appointments.StatusCompleted), appointments.ErrNotFound))
}

func TestStore_ForeignKeys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Appointments().Create(ctx, appointments.Appointment{PatientID: 1, DoctorID: 1, Date: date(2025, 1, 1)})
	assert.True(t, errors.Is(err, ErrForeignKey))

	_, err = s.Treatments().Create(ctx, treatments.Treatment{AppointID: 1, ServiceName: "X"})
	assert.True(t, errors.Is(err, ErrForeignKey))
}

func TestStore_TreatmentViews(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	doc, _ := s.Doctors().Create(ctx, doctors.Doctor{FirstName: "James", Specialty: "Oncology"})
	pat, _ := s.Patients().Create(ctx, patients.Patient{Name: "Ana", Phone: "1"})
	appt, _ := s.Appointments().Create(ctx, appointments.Appointment{PatientID: pat, DoctorID: doc, Date: date(2025, 4, 1)})

	t1, _ := s.Treatments().Create(ctx, treatments.Treatment{AppointID: appt, ServiceName: "Blood test", Cost: 40})
	t2, _ := s.Treatments().Create(ctx, treatments.Treatment{AppointID: appt, ServiceName: "MRI", Cost: 320})

	list, err := s.Treatments().ListViews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, t2, list[0].ID)
	assert.Equal(t, t1, list[1].ID)
	assert.Equal(t, "Ana", list[0].Patient)
	assert.Equal(t, "James", list[0].Doctor)
	assert.Equal(t, date(2025, 4, 1), list[0].AppointDate)
}

func TestStore_ConcurrentCreate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Patients().Create(ctx, patients.Patient{Name: "P", Phone: "1"})
		}()
	}
	wg.Wait()

	list, err := s.Patients().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
	assert.Equal(t, int64(50), list[0].ID)
}
