package config

import (
	"encoding/json"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input     InputConfig       `yaml:"input"`
	Request   RequestConfig     `yaml:"request"`
	Execution ExecutionConfig   `yaml:"execution"`
	Extract   map[string]string `yaml:"extract"` // name → JSONPath
	Output    OutputConfig      `yaml:"output"`
	Logging   LoggingConfig     `yaml:"logging"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type RequestConfig struct {
	Timeout     string            `yaml:"timeout"`
	Headers     map[string]string `yaml:"headers"`
	QueryParams map[string]string `yaml:"query_params"`
	Body        string            `yaml:"body"` // raw JSON, sent on every request when set
	Auth        AuthConfig        `yaml:"auth"`
}

type AuthConfig struct {
	Type     string `yaml:"type"` // none, bearer, basic, api_key
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Header   string `yaml:"header"`
	Key      string `yaml:"key"`
}

type ExecutionConfig struct {
	Parallel int     `yaml:"parallel"`
	MaxRPS   float64 `yaml:"max_rps"`
}

type OutputConfig struct {
	Directory  string   `yaml:"directory"`
	FilePrefix string   `yaml:"file_prefix"`
	Formats    []string `yaml:"formats"` // summary formats: markdown, html
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// RequestOptions converts the request section into the domain options applied
// to every scenario. Validate must have accepted the config first.
func (c *Config) RequestOptions() domain.RequestOptions {
	timeout, err := time.ParseDuration(c.Request.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	var body json.RawMessage
	if c.Request.Body != "" {
		body = json.RawMessage(c.Request.Body)
	}

	return domain.RequestOptions{
		Headers:     c.Request.Headers,
		QueryParams: c.Request.QueryParams,
		Body:        body,
		Timeout:     timeout,
		Auth: domain.AuthConfig{
			Type:     domain.AuthType(c.Request.Auth.Type),
			Token:    c.Request.Auth.Token,
			Username: c.Request.Auth.Username,
			Password: c.Request.Auth.Password,
			Header:   c.Request.Auth.Header,
			Key:      c.Request.Auth.Key,
		},
	}
}
