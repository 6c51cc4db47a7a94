package config

// EnvPrefix is passed to envconfig; the struct tags already carry the full
// ESTIMATES_ names so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv = "ESTIMATES_APP_ENV"
	EnvPort   = "ESTIMATES_APP_PORT"

	EnvDBDSN  = "ESTIMATES_DB_DSN"
	EnvDBHost = "ESTIMATES_DB_HOST"
	EnvDBUser = "ESTIMATES_DB_USER"
	EnvDBName = "ESTIMATES_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
