package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DB_PATH", "DB_DSN", "JWT_SECRET", "JWT_ISSUER",
		"QUERY_MAX_ROWS", "QUERY_TIMEOUT", "MAINTENANCE_CRON", "AUTO_MIGRATE",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "APP_NAME",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, DefaultQueryMaxRows, cfg.QueryMaxRows)
	assert.Equal(t, DefaultQueryTimeout, cfg.QueryTimeout)
	assert.Equal(t, DefaultMaintenanceCron, cfg.MaintenanceCron)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"PORT=9090\nQUERY_MAX_ROWS=25\nQUERY_TIMEOUT=3s\nMAINTENANCE_CRON=\nAUTO_MIGRATE=false\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 25, cfg.QueryMaxRows)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "", cfg.MaintenanceCron)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad max rows":         {"QUERY_MAX_ROWS": "zero"},
		"negative max rows":    {"QUERY_MAX_ROWS": "-1"},
		"bad timeout":          {"QUERY_TIMEOUT": "soon"},
		"bad auto migrate":     {"AUTO_MIGRATE": "maybe"},
		"unknown driver":       {"DB_DRIVER": "oracle"},
		"postgres without dsn": {"DB_DRIVER": "postgres"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	c := Config{DBDriver: DriverSQLite, DBPath: "/tmp/clinic.db"}
	assert.Contains(t, c.DSN(), "file:/tmp/clinic.db?")
	assert.Contains(t, c.DSN(), "foreign_keys(1)")

	c = Config{DBDriver: DriverPostgres, DBDSN: "postgres://x"}
	assert.Equal(t, "postgres://x", c.DSN())
}
