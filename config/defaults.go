package config

import "time"

// DefaultConfig returns shipeval's built-in defaults: 2 judges, seed
// 42, agent_model "mock:default", output_dir "runs/".
func DefaultConfig() *Config {
	return &Config{
		Run: DefaultRunConfig(),
		Log: DefaultLogConfig(),
	}
}

// DefaultRunConfig returns the default RunConfig.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		AgentModel: "mock:default",
		Judges:     2,
		Seed:       42,
		OutputDir:  "runs/",
		Timeout:    60 * time.Second,
	}
}

// DefaultLogConfig returns the default LogConfig.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{"stdout"},
	}
}
