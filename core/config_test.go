package core

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	valid := testConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = " " }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"negative timeout", func(c *Config) { c.RequestTimeoutSeconds = -1 }},
	}
	for _, tc := range tests {
		cfg := testConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestConfigRequestTimeout(t *testing.T) {
	cfg := Config{RequestTimeoutSeconds: 30}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected 30s, got %s", cfg.RequestTimeout())
	}
	if (Config{}).RequestTimeout() != 0 {
		t.Fatal("zero seconds means no timeout")
	}
}

func TestActivityConfigTTL(t *testing.T) {
	cfg := ActivityConfig{RetentionHours: 48}
	if cfg.TTL() != 48*time.Hour {
		t.Fatalf("expected 48h, got %s", cfg.TTL())
	}
	if (ActivityConfig{}).TTL() != 0 {
		t.Fatal("zero hours means no ttl")
	}
}

func TestEnvRawConfigLoader(t *testing.T) {
	env := map[string]string{
		EnvAPIBase:   " https://tb.example.com/api ",
		EnvUsername:  "tenant@example.com",
		EnvPassword:  "secret",
		EnvTransport: "stdio",
	}
	loader := NewEnvRawConfigLoader(func(key string) string { return env[key] })

	raw, err := loader.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if raw["base_url"] != "https://tb.example.com/api" {
		t.Fatalf("expected trimmed base url, got %#v", raw["base_url"])
	}
	if raw["username"] != "tenant@example.com" || raw["password"] != "secret" || raw["transport"] != "stdio" {
		t.Fatalf("unexpected raw config %#v", raw)
	}

	empty := NewEnvRawConfigLoader(func(string) string { return "" })
	raw, err = empty.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw empty: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected no keys for unset env, got %#v", raw)
	}
}

func TestMissingEnv(t *testing.T) {
	missing := MissingEnv(func(string) string { return "" })
	want := []string{EnvTransport, EnvAPIBase, EnvUsername, EnvPassword}
	if strings.Join(missing, ",") != strings.Join(want, ",") {
		t.Fatalf("expected stable order %v, got %v", want, missing)
	}

	partial := map[string]string{EnvTransport: "stdio", EnvPassword: "secret"}
	missing = MissingEnv(func(key string) string { return partial[key] })
	if strings.Join(missing, ",") != EnvAPIBase+","+EnvUsername {
		t.Fatalf("unexpected missing set %v", missing)
	}

	full := map[string]string{
		EnvTransport: "stdio",
		EnvAPIBase:   "https://tb.example.com/api",
		EnvUsername:  "tenant@example.com",
		EnvPassword:  "secret",
	}
	if missing := MissingEnv(func(key string) string { return full[key] }); len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}
