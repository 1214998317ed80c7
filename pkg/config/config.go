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
	Redis        RedisConfig
	Cache        CacheConfig
	Cart         CartConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARTOPTS_APP_ENV" required:"true"`
	Port         string `envconfig:"CARTOPTS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CARTOPTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTOPTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARTOPTS_DB_DSN"`
	Driver string `envconfig:"CARTOPTS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARTOPTS_DB_HOST"`
	LegacyPort     int    `envconfig:"CARTOPTS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARTOPTS_DB_USER"`
	LegacyPassword string `envconfig:"CARTOPTS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARTOPTS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARTOPTS_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"CARTOPTS_DB_SQLITE_PATH" default:"file:cartoptions.db?cache=shared"`

	MaxOpenConns    int           `envconfig:"CARTOPTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARTOPTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARTOPTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARTOPTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARTOPTS_REDIS_URL"`
	Address      string        `envconfig:"CARTOPTS_REDIS_ADDR"`
	Password     string        `envconfig:"CARTOPTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARTOPTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARTOPTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARTOPTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARTOPTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARTOPTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARTOPTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	CatalogTTL time.Duration `envconfig:"CARTOPTS_CACHE_CATALOG_TTL" default:"5m"`
}

type CartConfig struct {
	Currency string `envconfig:"CARTOPTS_CART_CURRENCY" default:"USD"`
	MaxItems int    `envconfig:"CARTOPTS_CART_MAX_ITEMS" default:"100"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CARTOPTS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CARTOPTS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CARTOPTS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
