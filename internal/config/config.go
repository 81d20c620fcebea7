package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Environment controls cookie security attributes.
	Environment string `mapstructure:"environment" validate:"required,oneof=development production"`
	// AllowedOrigins lists the browser origins permitted for CORS and websocket upgrades.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,url"`
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the store backend.
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo postgres"`
	URL    string `mapstructure:"url"    validate:"required,url"`
	// Name is the database name used by the mongo backend.
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// Recognized values for ServerConfig.Environment and DatabaseConfig.Driver.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)
