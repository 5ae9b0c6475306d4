package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clinic-management/internal/adapters/auth/jwtauth"
	"clinic-management/internal/config"
	"clinic-management/internal/domain/sqlconsole"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/router"
	"clinic-management/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute corre rootCmd con args; los flags quedan seteados entre llamadas.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func sqliteEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "clinic.db"))
	t.Setenv("DB_DSN", "")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("LOG_LEVEL", "error")

	return "--env-file=" + filepath.Join(dir, "missing.env")
}

func TestCLI_MigrateSeedQuery(t *testing.T) {
	envArg := sqliteEnv(t)

	out, err := execute(t, "migrate", "up", envArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version: 4 (dirty: false)")

	out, err = execute(t, "migrate", "up", envArg)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	out, err = execute(t, "seed", envArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 doctors, 5 patients")

	_, err = execute(t, "seed", envArg)
	assert.ErrorIs(t, err, seed.ErrAlreadySeeded)

	out, err = execute(t, "query", envArg, "--format", "csv", "SELECT first_name FROM doctors ORDER BY doctor_id")
	require.NoError(t, err)
	assert.Equal(t, "first_name\nGregory\nLisa\nJames\nAllison\n", out)

	_, err = execute(t, "query", envArg, "DELETE FROM doctors")
	assert.ErrorIs(t, err, sqlconsole.ErrReadOnly)

	out, err = execute(t, "query", envArg, "--format", "table", "SELECT COUNT(*) AS n FROM doctors")
	require.NoError(t, err)
	assert.Contains(t, out, "1 row returned.")
	assert.Contains(t, out, "4")

	out, err = execute(t, "migrate", "down", envArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version: 3")

	_, err = execute(t, "migrate", "down", "zero", envArg)
	assert.Error(t, err)
}

func TestCLI_Token(t *testing.T) {
	envArg := sqliteEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "clinic")

	out, err := execute(t, "token", envArg, "--sub", "student")
	require.NoError(t, err)

	claims, err := jwtauth.NewVerifier("test-secret", "clinic").Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "student", claims.UserID)

	t.Setenv("JWT_SECRET", "")
	_, err = execute(t, "token", envArg, "--sub", "student")
	assert.Error(t, err)
}

func TestCLI_QueryRemote_TokenFromEnvFile(t *testing.T) {
	sqliteEnv(t)
	dir := t.TempDir()

	dsn := config.SQLiteDSN(filepath.Join(dir, "server.db"))
	_, err := database.MigrateUp(config.DriverSQLite, dsn)
	require.NoError(t, err)
	db, err := database.Open(config.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v := jwtauth.NewVerifier("remote-secret", "")
	tok, err := v.Issue("student", time.Hour)
	require.NoError(t, err)

	ts := httptest.NewServer(router.NewRouter(router.Options{DB: db, AuthVerifier: v}))
	defer ts.Close()

	// El token sólo está en el .env.
	t.Setenv("CLINIC_TOKEN", "")
	require.NoError(t, os.Unsetenv("CLINIC_TOKEN"))
	envPath := filepath.Join(dir, "client.env")
	require.NoError(t, os.WriteFile(envPath, []byte("CLINIC_TOKEN="+tok+"\n"), 0o600))

	t.Cleanup(func() { _ = queryCmd.Flags().Set("remote", "") })
	out, err := execute(t, "query", "--env-file="+envPath, "--remote", ts.URL, "--format", "csv", "SELECT COUNT(*) AS n FROM doctors")
	require.NoError(t, err)
	assert.Equal(t, "n\n0\n", out)
}

func TestNewLogger_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LOG_LEVEL=warn\nLOG_FORMAT=json\nAPP_NAME=clinic-test\n"), 0o600))
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "APP_NAME"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := config.Load(envPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	log := newLogger(cfg, &buf)
	log.Info("hidden", nil)
	log.Warn("visible", map[string]any{"k": "v"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"visible"`)
	assert.Contains(t, out, `"app":"clinic-test"`)
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "clinic "))
}

func TestQueryText(t *testing.T) {
	q, err := queryText(nil, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, sqlconsole.DefaultQuery, q)

	q, err = queryText([]string{"SELECT", "*", "FROM doctors"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM doctors", q)

	q, err = queryText([]string{"-"}, strings.NewReader("  SELECT 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", q)
}
