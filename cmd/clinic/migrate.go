package main

import (
	"fmt"
	"strconv"

	"clinic-management/internal/platform/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long:  `Apply, roll back or inspect the embedded schema migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := newMigrator(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = mg.Close() }()

		applied, err := mg.Up()
		if err != nil {
			return err
		}
		if !applied {
			fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run - database is up to date")
			return nil
		}
		return printVersion(cmd, mg)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1 step)",
	Long: `Roll back migrations.

Example:
  clinic migrate down      # roll back 1 migration
  clinic migrate down 2    # roll back 2 migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		mg, err := newMigrator(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = mg.Close() }()

		if err := mg.Down(steps); err != nil {
			return err
		}
		return printVersion(cmd, mg)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := newMigrator(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = mg.Close() }()
		return printVersion(cmd, mg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func newMigrator(cmd *cobra.Command) (*database.Migrator, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return database.NewMigrator(cfg.DBDriver, cfg.DSN())
}

func printVersion(cmd *cobra.Command, mg *database.Migrator) error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty: %v)\n", v, dirty)
	return nil
}
