package main

import (
	"fmt"

	"clinic-management/internal/platform/database"
	"clinic-management/internal/router"
	"clinic-management/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample doctors, patients, appointments and treatments",
	Long: `Load a small sample data set through the domain services.

Refuses when doctors already exist unless --force is given.
Pending migrations are applied first when AUTO_MIGRATE is true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg, cmd.ErrOrStderr())
		force, _ := cmd.Flags().GetBool("force")

		if cfg.AutoMigrate {
			if _, err := database.MigrateUp(cfg.DBDriver, cfg.DSN()); err != nil {
				return err
			}
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		data, err := seed.Sample()
		if err != nil {
			return err
		}

		svcs := router.NewServices(router.ServicesOptions{DB: db, Logger: log})
		rep, err := seed.Run(cmd.Context(), seed.Services{
			Doctors:      svcs.Doctors,
			Patients:     svcs.Patients,
			Appointments: svcs.Appointments,
			Treatments:   svcs.Treatments,
		}, data, seed.Options{Force: force, Logger: log})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d doctors, %d patients, %d appointments, %d treatments\n",
			rep.Doctors, rep.Patients, rep.Appointments, rep.Treatments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("force", false, "seed even if doctors already exist")
}
