package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/handiism/erettsegi-downloader/internal/exam"
)

func TestLoad_NoConfigFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	settings, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := DefaultSettings()
	if *settings != *defaults {
		t.Errorf("Load() = %+v, want defaults %+v", settings, defaults)
	}
	if settings.BaseURL != exam.DefaultBaseURL {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a config file that does not exist")
	}
}

func TestLoad_ReadsFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erettsegit.json")
	content := `{"downloads_path": "/tmp/{date}_{level}", "keep_archives": true, "lang": "hu"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ERETTSEGIT_LANG", "EN")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.DownloadsPath != "/tmp/{date}_{level}" {
		t.Errorf("DownloadsPath = %q", settings.DownloadsPath)
	}
	if !settings.KeepArchives {
		t.Error("KeepArchives should be true")
	}
	if settings.Language != "EN" {
		t.Errorf("Language = %q, want environment override %q", settings.Language, "EN")
	}
	if settings.UserAgent != DefaultSettings().UserAgent {
		t.Errorf("UserAgent = %q, want default", settings.UserAgent)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSave_CanBeLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "erettsegit.json")

	settings := DefaultSettings()
	settings.ProxyAddress = "http://proxy.local:3128"
	settings.ClientTimeout = "5s"
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.ProxyAddress != settings.ProxyAddress {
		t.Errorf("ProxyAddress = %q", loaded.ProxyAddress)
	}
	if loaded.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v", loaded.Timeout())
	}
}

func TestSettings_Timeout(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", DefaultClientTimeout},
		{"garbage", DefaultClientTimeout},
		{"-1s", DefaultClientTimeout},
		{"90s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := &Settings{ClientTimeout: tt.value}
			if got := s.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	if got := NewLogger(os.Stderr, "debug").GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
	if got := NewLogger(os.Stderr, "nonsense").GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", got)
	}
}
