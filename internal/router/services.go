package router

import (
	"time"

	"clinic-management/internal/adapters/storage/memory"
	"clinic-management/internal/adapters/storage/sqldb"
	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/domain/patients"
	"clinic-management/internal/domain/sqlconsole"
	"clinic-management/internal/domain/treatments"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/platform/logger"
	"clinic-management/internal/ports/notify"
)

// Services agrupa los servicios por módulo. Lo comparten el router y los comandos del CLI.
type Services struct {
	Doctors      *doctors.Service
	Patients     *patients.Service
	Appointments *appointments.Service
	Treatments   *treatments.Service
	Console      *sqlconsole.Service
}

type ServicesOptions struct {
	// Opcional: si viene, usa la base SQL. Si no, in-memory (sin consola SQL).
	DB        *database.DB
	Publisher notify.Publisher
	Logger    logger.Logger

	QueryMaxRows int
	QueryTimeout time.Duration
}

func NewServices(opts ServicesOptions) Services {
	var (
		doctorRepo  doctors.Repository
		patientRepo patients.Repository
		apptRepo    appointments.Repository
		treatRepo   treatments.Repository
		engine      sqlconsole.Engine
	)

	if opts.DB != nil {
		doctorRepo = sqldb.NewDoctorsRepo(opts.DB)
		patientRepo = sqldb.NewPatientsRepo(opts.DB)
		apptRepo = sqldb.NewAppointmentsRepo(opts.DB)
		treatRepo = sqldb.NewTreatmentsRepo(opts.DB)
		engine = sqldb.NewConsoleEngine(opts.DB)
	} else {
		store := memory.NewStore()
		doctorRepo = store.Doctors()
		patientRepo = store.Patients()
		apptRepo = store.Appointments()
		treatRepo = store.Treatments()
	}

	doctorsSvc := doctors.NewService(doctorRepo, opts.Publisher)
	patientsSvc := patients.NewService(patientRepo, opts.Publisher)
	apptSvc := appointments.NewService(apptRepo, patientsSvc, doctorsSvc, opts.Publisher)

	return Services{
		Doctors:      doctorsSvc,
		Patients:     patientsSvc,
		Appointments: apptSvc,
		Treatments:   treatments.NewService(treatRepo, apptSvc, opts.Publisher),
		Console: sqlconsole.NewService(engine, sqlconsole.Options{
			MaxRows: opts.QueryMaxRows,
			Timeout: opts.QueryTimeout,
			Logger:  opts.Logger,
		}),
	}
}
