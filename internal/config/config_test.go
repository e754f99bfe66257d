package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, `
content:
  path: ./ideas.txt
post:
  topic: gophers
  add_date: false
  hashtag: daily
window:
  start: "09:00"
  end: "12:00"
publisher:
  driver: telegram
  telegram:
    token: "123:abc"
    chat_id: -100500
`)

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Post.Topic != "gophers" {
		t.Fatalf("Topic = %q", cfg.Post.Topic)
	}
	if cfg.Post.AddDate == nil || *cfg.Post.AddDate {
		t.Fatalf("AddDate = %v, want explicit false", cfg.Post.AddDate)
	}
	if cfg.Window.Start != "09:00" || cfg.Window.End != "12:00" {
		t.Fatalf("Window = %+v", cfg.Window)
	}
	if cfg.Publisher.Telegram.ChatID != -100500 {
		t.Fatalf("ChatID = %d", cfg.Publisher.Telegram.ChatID)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "posts:\n  topic: typo\n")

	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown top-level key")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := NewManager(path).LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	cfg.Normalize()
	if cfg.Post.Timezone != DefaultTimezone {
		t.Fatalf("Timezone = %q", cfg.Post.Timezone)
	}
	if cfg.Post.AddDate == nil || !*cfg.Post.AddDate {
		t.Fatal("AddDate should default to true")
	}
	if cfg.Post.Limit != DefaultLimit {
		t.Fatalf("Limit = %d", cfg.Post.Limit)
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv("TOPIC", "from-env")
	t.Setenv("ADD_DATE", "no")
	t.Setenv("RUN_WINDOW_START", "22:00")
	t.Setenv("RUN_WINDOW_END", "02:00")
	t.Setenv("X_API_KEY", "k")
	t.Setenv("TWITTER_API_SECRET", "s")

	cfg := &Config{}
	cfg.Post.Topic = "from-file"
	ApplyEnv(cfg)

	if cfg.Post.Topic != "from-env" {
		t.Fatalf("Topic = %q", cfg.Post.Topic)
	}
	if cfg.Post.AddDate == nil || *cfg.Post.AddDate {
		t.Fatalf("AddDate = %v, want false", cfg.Post.AddDate)
	}
	if cfg.Window.Start != "22:00" || cfg.Window.End != "02:00" {
		t.Fatalf("Window = %+v", cfg.Window)
	}
	if cfg.Publisher.Twitter.APIKey != "k" || cfg.Publisher.Twitter.APISecret != "s" {
		t.Fatalf("Twitter creds = %+v", cfg.Publisher.Twitter)
	}
}

func TestParseBool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"y", false, true},
		{"0", true, false},
		{"false", true, false},
		{"No", true, false},
		{"banana", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := ParseBool(tt.raw, tt.def); got != tt.want {
			t.Fatalf("ParseBool(%q, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate default: %v", err)
	}

	cfg.Publisher.Driver = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown publisher driver")
	}
}
