package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Environment selects between the relaxed development behavior (auth bypass,
// demo-teacher fallback) and the strict production behavior. It is resolved
// once at startup; request handling never re-reads the raw env var.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type Config struct {
	Server      Server
	Database    Database
	Auth        Auth
	Frontend    Frontend
	Environment Environment
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}
type Auth struct {
	JWTSecret string
}
type Frontend struct {
	Origin string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3001")
	viper.SetDefault("FRONTEND_URL", "http://localhost:8080")
	viper.SetDefault("APP_ENV", string(Development))

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Frontend.Origin = viper.GetString("FRONTEND_URL")
	config.Environment = ParseEnvironment(viper.GetString("APP_ENV"))

	// Secrets and the database password stay out of the logs.
	log.Info().
		Str("env", string(config.Environment)).
		Str("port", config.Server.Port).
		Str("frontend_origin", config.Frontend.Origin).
		Msg("Config loaded")
	return &config, nil
}

// ParseEnvironment defaults to Development for any value other than "production".
func ParseEnvironment(s string) Environment {
	if s == string(Production) {
		return Production
	}
	return Development
}
