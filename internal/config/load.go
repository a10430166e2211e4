package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
//
// Environment variables use the LABELWORKER_ prefix with underscores
// separating sections, e.g. LABELWORKER_NUXEO_ENDPOINT maps to
// Config.Nuxeo.Endpoint.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for settings that have sensible local values. Everything
	// else is required and must come from the environment.
	v.SetDefault("server.listen_addr", ":8081")
	v.SetDefault("server.log_level", "info")

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file values.
	v.SetEnvPrefix("LABELWORKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper's AutomaticEnv does not surface env-only keys through Unmarshal
	// unless the keys are known, so bind each one explicitly.
	for _, key := range []string{
		"server.listen_addr",
		"server.log_level",
		"rekognition.project_arn",
		"rekognition.project_version_arn",
		"nuxeo.endpoint",
		"nuxeo.username",
		"nuxeo.password",
		"queue.primary_url",
		"queue.dead_letter_url",
		"notify.recipient",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
