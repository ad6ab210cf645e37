package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Sheet.Driver != "sqlite" || cfg.Sheet.Name != "rsvp" {
		t.Errorf("sheet = %+v", cfg.Sheet)
	}
	if cfg.Form.ContactField != "whatsapp" || cfg.Form.ConfettiSeconds != 3 {
		t.Errorf("form = %+v", cfg.Form)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Chat.APIKey != "" {
		t.Errorf("chat key should be empty, got %q", cfg.Chat.APIKey)
	}
}

func TestReadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
sheet:
  driver: memory
event:
  title: Sam & Alex
  start: "2025-12-20T18:00:00"
  location: Asia/Kolkata
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOVEFEST_SERVER_PORT", "9090")
	t.Setenv("LOVEFEST_FORM_CONTACT_FIELD", "email")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Sheet.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Sheet.Driver)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want env override", cfg.Server.Port)
	}
	if cfg.Form.ContactField != "email" {
		t.Errorf("contact field = %q", cfg.Form.ContactField)
	}
	start, err := cfg.Event.StartTime()
	if err != nil {
		t.Fatalf("StartTime: %v", err)
	}
	if want := time.Date(2025, 12, 20, 12, 30, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start.UTC(), want)
	}
}

func TestReadConfig_GeminiKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-gemini")
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Chat.APIKey != "from-gemini" {
		t.Errorf("api key = %q", cfg.Chat.APIKey)
	}

	t.Setenv("LOVEFEST_CHAT_API_KEY", "own-key")
	cfg, err = ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Chat.APIKey != "own-key" {
		t.Errorf("prefixed key should win, got %q", cfg.Chat.APIKey)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Sheet: SheetConfig{Driver: "sqlite"},
			Form:  FormConfig{ContactField: "whatsapp"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Sheet.Driver = "excel" }, true},
		{"redis without redis", func(c *Config) { c.Sheet.Driver = "redis" }, true},
		{"redis enabled", func(c *Config) { c.Sheet.Driver = "redis"; c.Redis.Enabled = true }, false},
		{"bad contact field", func(c *Config) { c.Form.ContactField = "phone" }, true},
		{"bad start", func(c *Config) { c.Event.Start = "next friday" }, true},
		{"bad zone", func(c *Config) { c.Event.Start = "2025-12-20T18:00:00"; c.Event.Location = "Mars/Olympus" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChatTimeout(t *testing.T) {
	if got := (ChatConfig{}).ChatTimeout(); got != 30*time.Second {
		t.Errorf("default timeout = %v", got)
	}
	if got := (ChatConfig{TimeoutSeconds: 5}).ChatTimeout(); got != 5*time.Second {
		t.Errorf("timeout = %v", got)
	}
}
