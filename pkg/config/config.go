package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOCK_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"STOCK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOCK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"STOCK_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STOCK_DB_DSN"`

	Host     string `envconfig:"STOCK_DB_HOST"`
	Port     int    `envconfig:"STOCK_DB_PORT" default:"5432"`
	User     string `envconfig:"STOCK_DB_USER"`
	Password string `envconfig:"STOCK_DB_PASSWORD"`
	Name     string `envconfig:"STOCK_DB_NAME"`
	SSLMode  string `envconfig:"STOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOCK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite engine.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

type HTTPConfig struct {
	ReadTimeout        time.Duration `envconfig:"STOCK_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout       time.Duration `envconfig:"STOCK_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout    time.Duration `envconfig:"STOCK_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSAllowedOrigins []string      `envconfig:"STOCK_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate    bool `envconfig:"STOCK_AUTO_MIGRATE" default:"true"`
	SeedOnEmpty    bool `envconfig:"STOCK_SEED_ON_EMPTY" default:"true"`
	MetricsEnabled bool `envconfig:"STOCK_METRICS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))

	switch db.Driver {
	case DriverSQLite:
		if db.DSN == "" {
			db.DSN = DefaultSQLiteDSN
		}
		return nil
	case DriverPostgres:
	default:
		return fmt.Errorf("unsupported %s %q (want %s or %s)", EnvDBDriver, db.Driver, DriverSQLite, DriverPostgres)
	}

	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
