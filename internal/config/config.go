package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Rekognition RekognitionConfig `mapstructure:"rekognition" validate:"required"`
	Nuxeo       NuxeoConfig       `mapstructure:"nuxeo"       validate:"required"`
	Queue       QueueConfig       `mapstructure:"queue"       validate:"required"`
	Notify      NotifyConfig      `mapstructure:"notify"`
}

// ServerConfig contains settings for the worker's own HTTP surface
// (health and metrics) and logging.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr" validate:"required"`
	LogLevel   string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
}

// RekognitionConfig identifies the custom-labels model the worker drives.
// The version ARN is both the detection target and the start/stop handle;
// the project ARN is needed for status queries.
type RekognitionConfig struct {
	ProjectARN        string `mapstructure:"project_arn"         validate:"required"`
	ProjectVersionARN string `mapstructure:"project_version_arn" validate:"required"`
}

// NuxeoConfig contains the document store endpoint and credentials.
type NuxeoConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
}

// QueueConfig contains the primary job queue and its dead-letter companion.
type QueueConfig struct {
	PrimaryURL    string `mapstructure:"primary_url"     validate:"required,url"`
	DeadLetterURL string `mapstructure:"dead_letter_url" validate:"required,url"`
}

// NotifyConfig controls the end-of-run completion mail. An empty recipient
// disables notification entirely.
type NotifyConfig struct {
	Recipient string `mapstructure:"recipient" validate:"omitempty,email"`
}
