package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestInit(t *testing.T) {
	t.Setenv("TEST_OWM_KEY", "from-env")

	path := writeProperties(t, `app:
  server:
    port: 8080
    context-path: /owm
  openweather:
    api-key: ${TEST_OWM_KEY}
    base-url: ${TEST_OWM_BASE_URL:https://api.openweathermap.org/data/2.5/}
    timeout: 15s
  cache:
    enabled: true
    ttl:
      weather: 5m
`)

	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := GetString("app.openweather.api-key"); got != "from-env" {
		t.Errorf("api-key = %q, want from-env", got)
	}
	if got := GetString("app.openweather.base-url"); got != "https://api.openweathermap.org/data/2.5/" {
		t.Errorf("base-url = %q, want default", got)
	}
	if got := GetString("app.server.context-path"); got != "/owm" {
		t.Errorf("context-path = %q, want /owm", got)
	}
	if got := GetInt("app.server.port"); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
	if got := GetDuration("app.openweather.timeout"); got != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", got)
	}
	if !GetBool("app.cache.enabled") {
		t.Error("cache.enabled should be true")
	}
	if got := GetDuration("app.cache.ttl.weather"); got != 5*time.Minute {
		t.Errorf("ttl.weather = %v, want 5m", got)
	}
	if got := GetStringOrDefault("app.missing", "fallback"); got != "fallback" {
		t.Errorf("GetStringOrDefault() = %q, want fallback", got)
	}
}

func TestInit_MissingFile(t *testing.T) {
	if err := Init("/nonexistent/path/application.yml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestResolveEnvVariable(t *testing.T) {
	t.Setenv("RESOLVE_SET", "value")

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "plain string", input: "hello", want: "hello"},
		{name: "env set", input: "${RESOLVE_SET}", want: "value"},
		{name: "env set with default", input: "${RESOLVE_SET:other}", want: "value"},
		{name: "env unset with default", input: "${RESOLVE_UNSET:fallback}", want: "fallback"},
		{name: "env unset without default", input: "${RESOLVE_UNSET}", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEnvVariable(tt.input); got != tt.want {
				t.Errorf("resolveEnvVariable(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
