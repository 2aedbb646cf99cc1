package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API   *APIconfig
	Srv   *Serviceconfig
	Store *Storeconfig
	DB    *DBconfig
	UI    *UIconfig
	Log   *Loggerconfig

	// Defaults lists the keys that fell back to their default value.
	Defaults []string
}

type APIconfig struct {
	BaseURL string
	Timeout time.Duration
}

type Serviceconfig struct {
	DashboardPort  string
	AllowedOrigins []string
	StaticDir      string
	// SessionIdle drops sessions that sent no request for this long.
	SessionIdle time.Duration
}

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Storeconfig struct {
	Driver     string
	SQLitePath string
}

type DBconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type UIconfig struct {
	SuccessCloseDelay time.Duration
	SuccessMessageTTL time.Duration
	ProfileCloseDelay time.Duration
	DefaultLat        float64
	DefaultLng        float64
}

type Loggerconfig struct {
	Level string
}

// Load reads .env files and then the environment. The first file never
// overrides the environment; later files (.env.local) override everything
// before them. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	for i, f := range files {
		if i == 0 {
			_ = godotenv.Load(f)
			continue
		}
		_ = godotenv.Overload(f)
	}
	return New()
}

func New() (*Config, error) {
	var defaults []string

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			defaults = append(defaults, key)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			defaults = append(defaults, key)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			defaults = append(defaults, key)
			return def
		}
		return val
	}

	getEnvFloat := func(key string, def float64) float64 {
		valStr := os.Getenv(key)
		if valStr == "" {
			defaults = append(defaults, key)
			return def
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			defaults = append(defaults, key)
			return def
		}
		return val
	}

	cnf := &Config{
		API: &APIconfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Srv: &Serviceconfig{
			DashboardPort:  getEnv("DASHBOARD_PORT", "3000"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
			StaticDir:      os.Getenv("STATIC_DIR"),
			SessionIdle:    time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		},
		Store: &Storeconfig{
			Driver:     getEnv("SETTINGS_DRIVER", StoreSQLite),
			SQLitePath: getEnv("SQLITE_DATABASE", "data/dashboard.db"),
		},
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "shuttle_user"),
			Password: getEnv("DB_PASSWORD", "shuttle_pass"),
			Database: getEnv("DB_NAME", "shuttle_dashboard"),
		},
		UI: &UIconfig{
			SuccessCloseDelay: time.Duration(getEnvInt("SUCCESS_CLOSE_DELAY_MS", 1000)) * time.Millisecond,
			SuccessMessageTTL: time.Duration(getEnvInt("SUCCESS_MESSAGE_TTL_MS", 3000)) * time.Millisecond,
			ProfileCloseDelay: time.Duration(getEnvInt("PROFILE_CLOSE_DELAY_MS", 1500)) * time.Millisecond,
			DefaultLat:        getEnvFloat("DEFAULT_LAT", 41.0082),
			DefaultLng:        getEnvFloat("DEFAULT_LNG", 28.9784),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}
	cnf.Defaults = defaults

	if cnf.Store.Driver != StoreSQLite && cnf.Store.Driver != StorePostgres {
		return nil, fmt.Errorf("unknown SETTINGS_DRIVER %q", cnf.Store.Driver)
	}
	if cnf.Srv.SessionIdle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_MINUTES must be positive")
	}
	if cnf.API.Timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}

	return cnf, nil
}

// DSN builds the postgres connection string.
func (c *DBconfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%v:%v@%v:%v/%v?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
