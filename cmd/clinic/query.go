package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"clinic-management/internal/adapters/storage/sqldb"
	"clinic-management/internal/domain/sqlconsole"
	"clinic-management/internal/platform/tabular"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a read-only SQL query and print the result",
	Long: `Run a single read-only statement (SELECT, WITH, EXPLAIN, VALUES) against the
clinic database and print the result.

Without arguments the sample query is used:
  ` + sqlconsole.DefaultQuery + `
Use "-" to read the query from stdin.

Example:
  clinic query "SELECT * FROM doctors"
  clinic query --format csv "SELECT * FROM treatments" > treatments.csv
  clinic query --remote http://localhost:8080 --token $TOKEN "SELECT COUNT(*) FROM patients"`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringP("format", "f", "table", "output format: table|csv|json|yaml")
	queryCmd.Flags().String("remote", "", "base URL of a running clinic server")
	queryCmd.Flags().String("token", "", "bearer token for --remote (env CLINIC_TOKEN)")
	queryCmd.Flags().String("user", "cli", "X-Debug-User-ID sent to a dev-mode server when no token is set")
}

func runQuery(cmd *cobra.Command, args []string) error {
	query, err := queryText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := tabular.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if remote, _ := cmd.Flags().GetString("remote"); remote != "" {
		user, _ := cmd.Flags().GetString("user")

		rem, err := sqlconsole.NewRemote(remote, remoteToken(cmd), cfg.QueryTimeout+5*time.Second)
		if err != nil {
			return err
		}
		rem.DebugUser = user

		if format != tabular.FormatJSON {
			b, err := rem.Render(cmd.Context(), query, format)
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		}

		resp, err := rem.Run(cmd.Context(), query)
		if err != nil {
			return err
		}
		if err := tabular.Write(out, format, resp.Table()); err != nil {
			return err
		}
		if resp.Truncated {
			fmt.Fprintf(cmd.ErrOrStderr(), "result truncated at %d rows\n", resp.RowCount)
		}
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := sqlconsole.NewService(sqldb.NewConsoleEngine(db), sqlconsole.Options{
		MaxRows: cfg.QueryMaxRows,
		Timeout: cfg.QueryTimeout,
		Logger:  newLogger(cfg, cmd.ErrOrStderr()),
	})

	res, err := svc.Run(cmd.Context(), query)
	if err != nil {
		return err
	}
	if err := tabular.Write(out, format, res.Table()); err != nil {
		return err
	}
	if res.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "result truncated at %d rows (QUERY_MAX_ROWS)\n", res.RowCount())
	}
	return nil
}

// remoteToken: --token, o CLINIC_TOKEN. Se llama después de loadConfig para que
// cuente el valor del .env.
func remoteToken(cmd *cobra.Command) string {
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		return token
	}
	return strings.TrimSpace(os.Getenv("CLINIC_TOKEN"))
}

// queryText: args unidos, "-" lee stdin, vacío usa la consulta de ejemplo.
func queryText(args []string, stdin io.Reader) (string, error) {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read query from stdin: %w", err)
		}
		q = strings.TrimSpace(string(b))
	}
	if q == "" {
		q = sqlconsole.DefaultQuery
	}
	return q, nil
}
