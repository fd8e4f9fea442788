package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath string // hcl graph script file or directory
	GraphName  string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a raw configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	if cfg.GraphName == "" {
		cfg.GraphName = "session"
	}
	return &cfg, nil
}
