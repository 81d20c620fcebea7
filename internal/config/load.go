package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKMATE_SERVER_PORT.
const EnvPrefix = "TASKMATE"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(viper.New(), "")
}

// LoadWithFlags behaves like Load but also binds the server command-line flags
// registered by RegisterFlags. Flags set explicitly take precedence over
// environment variables.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	bindings := map[string]string{
		"server.port":               "port",
		"server.log_level":          "log-level",
		"server.environment":        "environment",
		"database.driver":           "db-driver",
		"database.url":              "db-url",
		"auth.token_lifetime_hours": "token-lifetime-hours",
	}
	for key, name := range bindings {
		if flag := fs.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	configFile, _ := fs.GetString("config")
	return load(v, configFile)
}

// RegisterFlags adds the server configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	fs.Int("port", 0, "HTTP listen port")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("environment", "", "development or production")
	fs.String("db-driver", "", "store backend: mongo or postgres")
	fs.String("db-url", "", "store connection URL")
	fs.Int("token-lifetime-hours", 0, "session token lifetime in hours")
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	// Config file is optional
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvironmentDevelopment)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:5174"})

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.url", "")
	v.SetDefault("database.name", "taskManagerDB")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_hours", 365*24)
}
