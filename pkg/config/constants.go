package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "LOJA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LOJA_DB_DSN"
	EnvDBHost = "LOJA_DB_HOST"
	EnvDBUser = "LOJA_DB_USER"
	EnvDBName = "LOJA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
