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
	Render       RenderConfig
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
	Env          string   `envconfig:"ESTIMATES_APP_ENV" required:"true"`
	Port         string   `envconfig:"ESTIMATES_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"ESTIMATES_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ESTIMATES_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ESTIMATES_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESTIMATES_DB_DSN"`
	Driver string `envconfig:"ESTIMATES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESTIMATES_DB_HOST"`
	LegacyPort     int    `envconfig:"ESTIMATES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESTIMATES_DB_USER"`
	LegacyPassword string `envconfig:"ESTIMATES_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESTIMATES_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESTIMATES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESTIMATES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESTIMATES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESTIMATES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESTIMATES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ESTIMATES_REDIS_URL"`
	Address      string        `envconfig:"ESTIMATES_REDIS_ADDR"`
	Password     string        `envconfig:"ESTIMATES_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESTIMATES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESTIMATES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESTIMATES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESTIMATES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESTIMATES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESTIMATES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. The idempotency
// middleware is skipped entirely when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RenderConfig struct {
	Timeout       time.Duration `envconfig:"ESTIMATES_RENDER_TIMEOUT" default:"10s"`
	LetterheadDir string        `envconfig:"ESTIMATES_LETTERHEAD_DIR" default:"business_images"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool `envconfig:"ESTIMATES_USE_SQLITE" default:"false"`
	AutoMigrate   bool `envconfig:"ESTIMATES_AUTO_MIGRATE" default:"false"`
	SeedMaterials bool `envconfig:"ESTIMATES_SEED_MATERIALS" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = "file:estimates.db?cache=shared"
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
