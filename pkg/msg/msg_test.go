package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yml")
	content := `app:
  start: "Starting application"
  req-end: "Request {0} {1} finished with status {2} in {3}"
weather:
  upstream-fail: "Upstream call {0} failed: {1}"
  query: "Query {0}"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	tests := []struct {
		name string
		key  string
		args []interface{}
		want string
	}{
		{name: "no placeholders", key: "app.start", want: "Starting application"},
		{
			name: "primitives",
			key:  "app.req-end",
			args: []interface{}{"GET", "/weather/current", 200, 1500 * time.Millisecond},
			want: "Request GET /weather/current finished with status 200 in 1.5s",
		},
		{
			name: "error argument",
			key:  "weather.upstream-fail",
			args: []interface{}{"weather", errors.New("boom")},
			want: "Upstream call weather failed: boom",
		},
		{
			name: "struct argument is json encoded",
			key:  "weather.query",
			args: []interface{}{struct {
				City string `json:"city"`
			}{City: "Oslo"}},
			want: `Query {"city":"Oslo"}`,
		},
		{name: "unknown key", key: "nope", want: "Message not found: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetMessage(tt.key, tt.args...); got != tt.want {
				t.Errorf("GetMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInit_MissingFile(t *testing.T) {
	if err := Init("/nonexistent/messages.yml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestFormatArg(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want string
	}{
		{name: "nil", arg: nil, want: ""},
		{name: "float", arg: 21.5, want: "21.5"},
		{name: "bool", arg: true, want: "true"},
		{name: "duration", arg: 250 * time.Millisecond, want: "250ms"},
		{name: "slice", arg: []string{"Lisbon", "Porto"}, want: `["Lisbon","Porto"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatArg(tt.arg); got != tt.want {
				t.Errorf("formatArg(%v) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}
