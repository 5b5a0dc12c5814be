// Package config reads the backend's runtime configuration from the
// environment.
package config

import "github.com/kelseyhightower/envconfig"

// Config holds the runtime configuration of the backend.
type Config struct {
	Addr             string `envconfig:"ADDR" default:":8080"`
	GinMode          string `envconfig:"GIN_MODE" default:"release"`
	LogFormat        string `envconfig:"LOG_FORMAT" default:"json"`
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:""`
	EnablePprof      bool   `envconfig:"ENABLE_PPROF" default:"false"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
