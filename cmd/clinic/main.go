package main

import (
	"fmt"
	"io"
	"os"

	"clinic-management/internal/config"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Clinic management API and read-only SQL console",
	Long: `clinic owns the clinic database (doctors, patients, appointments, treatments).

It serves the HTTP API, manages the schema, loads sample data and runs
read-only SQL queries that are printed as a table, CSV, JSON or YAML.

Configuration comes from .env and the environment; flags override both.`,
	SilenceUsage: true,
}

// flagEnv: flag de cobra -> variable de entorno que pisa.
var flagEnv = map[string]string{
	"db-driver":  "DB_DRIVER",
	"db-path":    "DB_PATH",
	"db-dsn":     "DB_DSN",
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
	"port":       "PORT",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("db-driver", "", "database driver: sqlite|postgres|mysql (env DB_DRIVER)")
	pf.String("db-path", "", "SQLite database file (env DB_PATH)")
	pf.String("db-dsn", "", "postgres/mysql DSN (env DB_DSN)")
	pf.String("log-level", "", "debug|info|warn|error (env LOG_LEVEL)")
	pf.String("log-format", "", "text|json (env LOG_FORMAT)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clinic %s (commit: %s)\n", version, commit)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig vuelca los flags usados al entorno y después lee config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	for name, env := range flagEnv {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return config.Config{}, err
		}
		if err := os.Setenv(env, v); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(envFile)
}

func newLogger(cfg config.Config, out io.Writer) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		File:   cfg.LogFile,
		Out:    out,
	})
}

func openDB(cfg config.Config) (*database.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}
