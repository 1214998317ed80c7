package config

// EnvPrefix is empty because every field carries its full variable name.
const EnvPrefix = ""

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "CARTOPTS_APP_ENV"
	EnvPort           = "CARTOPTS_APP_PORT"
	EnvLogLevel       = "CARTOPTS_LOG_LEVEL"
	EnvDBDSN          = "CARTOPTS_DB_DSN"
	EnvDBHost         = "CARTOPTS_DB_HOST"
	EnvDBUser         = "CARTOPTS_DB_USER"
	EnvDBPassword     = "CARTOPTS_DB_PASSWORD"
	EnvDBName         = "CARTOPTS_DB_NAME"
	EnvRedisURL       = "CARTOPTS_REDIS_URL"
	EnvCatalogTTL     = "CARTOPTS_CACHE_CATALOG_TTL"
	EnvCartCurrency   = "CARTOPTS_CART_CURRENCY"
	EnvUseSQLite      = "CARTOPTS_USE_SQLITE"
	EnvAutoMigrate    = "CARTOPTS_AUTO_MIGRATE"
	EnvAllowedOrigins = "CARTOPTS_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
