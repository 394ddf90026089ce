package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	EnvAPIBase   = "THINGSBOARD_API_BASE"
	EnvUsername  = "THINGSBOARD_USERNAME"
	EnvPassword  = "THINGSBOARD_PASSWORD"
	EnvTransport = "MCP_SERVER_TRANSPORT"
)

type ActivityConfig struct {
	RetentionHours int `koanf:"retention_hours" mapstructure:"retention_hours"`
	RowCap         int `koanf:"row_cap" mapstructure:"row_cap"`
}

func (c ActivityConfig) TTL() time.Duration {
	if c.RetentionHours <= 0 {
		return 0
	}
	return time.Duration(c.RetentionHours) * time.Hour
}

type Config struct {
	ServiceName           string         `koanf:"service_name" mapstructure:"service_name"`
	BaseURL               string         `koanf:"base_url" mapstructure:"base_url"`
	Username              string         `koanf:"username" mapstructure:"username"`
	Password              string         `koanf:"password" mapstructure:"password"`
	Transport             string         `koanf:"transport" mapstructure:"transport"`
	RequestTimeoutSeconds int            `koanf:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
	Activity              ActivityConfig `koanf:"activity" mapstructure:"activity"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:           "thingsboard-mcp",
		Transport:             "stdio",
		RequestTimeoutSeconds: 30,
		Activity: ActivityConfig{
			RetentionHours: 24 * 30,
			RowCap:         100000,
		},
	}
}

func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("core: base_url is required")
	}
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("core: username is required")
	}
	if strings.TrimSpace(c.Password) == "" {
		return fmt.Errorf("core: password is required")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("core: request_timeout_seconds must not be negative")
	}
	return nil
}

// EnvRawConfigLoader binds the platform environment variables onto the
// config surface. Missing variables are simply absent from the raw map;
// startup decides whether that is fatal.
type EnvRawConfigLoader struct {
	Getenv func(string) string
}

func NewEnvRawConfigLoader(getenv func(string) string) *EnvRawConfigLoader {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &EnvRawConfigLoader{Getenv: getenv}
}

func (l *EnvRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	getenv := os.Getenv
	if l != nil && l.Getenv != nil {
		getenv = l.Getenv
	}
	raw := map[string]any{}
	for env, key := range map[string]string{
		EnvAPIBase:   "base_url",
		EnvUsername:  "username",
		EnvPassword:  "password",
		EnvTransport: "transport",
	} {
		if value := strings.TrimSpace(getenv(env)); value != "" {
			raw[key] = value
		}
	}
	return raw, nil
}

// MissingEnv reports which required environment variables are unset, in a
// stable order suitable for startup diagnostics.
func MissingEnv(getenv func(string) string) []string {
	if getenv == nil {
		getenv = os.Getenv
	}
	missing := []string{}
	for _, env := range []string{EnvTransport, EnvAPIBase, EnvUsername, EnvPassword} {
		if strings.TrimSpace(getenv(env)) == "" {
			missing = append(missing, env)
		}
	}
	return missing
}
