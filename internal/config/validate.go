package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	// Request validation
	if cfg.Request.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Request.Timeout); err != nil {
			errs = append(errs, fmt.Sprintf("request.timeout is not a valid duration: %v", err))
		} else if d <= 0 {
			errs = append(errs, "request.timeout must be positive")
		}
	}
	if cfg.Request.Body != "" && !json.Valid([]byte(cfg.Request.Body)) {
		errs = append(errs, "request.body is not valid JSON")
	}

	switch cfg.Request.Auth.Type {
	case "", "none":
	case "bearer":
		if cfg.Request.Auth.Token == "" {
			errs = append(errs, "request.auth.token is required for bearer auth")
		}
	case "basic":
		if cfg.Request.Auth.Username == "" {
			errs = append(errs, "request.auth.username is required for basic auth")
		}
	case "api_key":
		if cfg.Request.Auth.Key == "" {
			errs = append(errs, "request.auth.key is required for api_key auth")
		}
	default:
		errs = append(errs, fmt.Sprintf("request.auth.type must be one of: none, bearer, basic, api_key (got %q)", cfg.Request.Auth.Type))
	}

	// Execution validation
	if cfg.Execution.Parallel < 0 {
		errs = append(errs, "execution.parallel must not be negative")
	}
	if cfg.Execution.MaxRPS < 0 {
		errs = append(errs, "execution.max_rps must not be negative")
	}

	// Output validation
	if cfg.Output.Directory == "" {
		errs = append(errs, "output.directory must not be empty")
	}
	for _, format := range cfg.Output.Formats {
		switch format {
		case "markdown", "md", "html":
		default:
			errs = append(errs, fmt.Sprintf("output.formats must contain only markdown, md or html (got %q)", format))
		}
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
