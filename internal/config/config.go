package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	DefaultPort            = "8080"
	DefaultDBPath          = "./Clinic.db"
	DefaultQueryMaxRows    = 1000
	DefaultQueryTimeout    = 10 * time.Second
	DefaultMaintenanceCron = "@daily"
)

// Config agrupa todo lo que el binario lee del entorno.
// Los flags de cobra se vuelcan al entorno antes de Load, así pisan a .env y env.
type Config struct {
	Port string

	DBDriver string
	DBPath   string // solo sqlite
	DBDSN    string // postgres / mysql

	AutoMigrate     bool
	MaintenanceCron string

	JWTSecret string
	JWTIssuer string // opcional, se valida si viene

	QueryMaxRows int
	QueryTimeout time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
	AppName   string
}

// Load lee .env (si existe) y luego las variables de entorno.
// Un .env ausente no es error: en contenedores todo viene por env.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		Port:            envOr("PORT", DefaultPort),
		DBDriver:        strings.ToLower(envOr("DB_DRIVER", DriverSQLite)),
		DBPath:          envOr("DB_PATH", DefaultDBPath),
		DBDSN:           strings.TrimSpace(os.Getenv("DB_DSN")),
		AutoMigrate:     true,
		MaintenanceCron: DefaultMaintenanceCron,
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:       strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		QueryMaxRows:    DefaultQueryMaxRows,
		QueryTimeout:    DefaultQueryTimeout,
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "text"),
		LogFile:         strings.TrimSpace(os.Getenv("LOG_FILE")),
		AppName:         envOr("APP_NAME", "clinic-management"),
	}

	if v, ok := os.LookupEnv("MAINTENANCE_CRON"); ok {
		cfg.MaintenanceCron = strings.TrimSpace(v)
	}

	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AUTO_MIGRATE %q: %w", v, err)
		}
		cfg.AutoMigrate = b
	}

	if v := strings.TrimSpace(os.Getenv("QUERY_MAX_ROWS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid QUERY_MAX_ROWS %q", v)
		}
		cfg.QueryMaxRows = n
	}

	if v := strings.TrimSpace(os.Getenv("QUERY_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid QUERY_TIMEOUT %q", v)
		}
		cfg.QueryTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate revisa combinaciones driver/dsn.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("DB_PATH is required for driver %q", c.DBDriver)
		}
	case DriverPostgres, DriverMySQL:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (sqlite|postgres|mysql)", c.DBDriver)
	}
	return nil
}

// DSN devuelve el DSN efectivo para el driver configurado.
// Para sqlite se arma desde DB_PATH con los pragmas que usamos siempre.
func (c Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return SQLiteDSN(c.DBPath)
	}
	return c.DBDSN
}

// SQLiteDSN arma un DSN de modernc.org/sqlite con WAL, busy timeout y FKs.
func SQLiteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)"
}

// Addr devuelve la dirección de escucha del server HTTP.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
