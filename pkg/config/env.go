package config

const EnvPrefix = "STOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv       = "STOCK_APP_ENV"
	EnvPort         = "STOCK_APP_PORT"
	EnvLogLevel     = "STOCK_LOG_LEVEL"
	EnvLogFormat    = "STOCK_LOG_FORMAT"
	EnvLogWarnStack = "STOCK_LOG_WARN_STACK"

	EnvDBDriver   = "STOCK_DB_DRIVER"
	EnvDBDSN      = "STOCK_DB_DSN"
	EnvDBHost     = "STOCK_DB_HOST"
	EnvDBPort     = "STOCK_DB_PORT"
	EnvDBUser     = "STOCK_DB_USER"
	EnvDBPassword = "STOCK_DB_PASSWORD"
	EnvDBName     = "STOCK_DB_NAME"
	EnvDBSSLMode  = "STOCK_DB_SSLMODE"

	EnvHTTPReadTimeout     = "STOCK_HTTP_READ_TIMEOUT"
	EnvHTTPWriteTimeout    = "STOCK_HTTP_WRITE_TIMEOUT"
	EnvHTTPShutdownTimeout = "STOCK_HTTP_SHUTDOWN_TIMEOUT"
	EnvCORSAllowedOrigins  = "STOCK_CORS_ALLOWED_ORIGINS"

	EnvAutoMigrate    = "STOCK_AUTO_MIGRATE"
	EnvSeedOnEmpty    = "STOCK_SEED_ON_EMPTY"
	EnvMetricsEnabled = "STOCK_METRICS_ENABLED"
)

// DefaultSQLiteDSN matches the on-disk database the service has always used.
const DefaultSQLiteDSN = "stock.db"

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
