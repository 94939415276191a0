package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Directories: []string{"features"},
			Include:     []string{"*.feature", "*.gherkin"},
			Exclude:     []string{"vendor/**", "node_modules/**"},
			Recursive:   &recursive,
		},
		Request: RequestConfig{
			Timeout: "30s",
			Auth: AuthConfig{
				Type: "none",
			},
		},
		Execution: ExecutionConfig{
			Parallel: 1,
			MaxRPS:   0,
		},
		Output: OutputConfig{
			Directory:  "reports",
			FilePrefix: "apiprobe_",
			Formats:    []string{"markdown"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
