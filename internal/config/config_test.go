// ABOUTME: Tests for habits configuration management.
// ABOUTME: Covers load, save, defaults, view preferences, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/stats"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/habits-test"}
	if got := cfg.GetDataDir(); got != "/tmp/habits-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/habits-test")
	}
	if got := cfg.DBPath(); got != "/tmp/habits-test/habits.db" {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/habits", filepath.Join(home, "data/habits")},
		{"data/habits", "data/habits"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/habits-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "habits-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestViewDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.GetLocale() != stats.LocaleZH {
		t.Errorf("GetLocale() = %q, want zh", cfg.GetLocale())
	}
	if cfg.GetCalendarView() != calendar.MonthView {
		t.Errorf("GetCalendarView() = %q, want month", cfg.GetCalendarView())
	}
	if cfg.GetChartView() != stats.ChartMonthly {
		t.Errorf("GetChartView() = %q, want monthly", cfg.GetChartView())
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.DataDir != "" || cfg.CurrentHabit != "" {
		t.Errorf("Expected empty defaults, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{
		DataDir:      "/tmp/habits-data",
		Locale:       "en",
		CurrentHabit: "abcd1234",
	}
	cfg.SetCalendarView(calendar.WeekView)
	cfg.SetChartView(stats.ChartYearly)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.DataDir != "/tmp/habits-data" {
		t.Errorf("DataDir mismatch: got %q", loaded.DataDir)
	}
	if loaded.GetLocale() != stats.LocaleEN {
		t.Errorf("Locale mismatch: got %q", loaded.Locale)
	}
	if loaded.CurrentHabit != "abcd1234" {
		t.Errorf("CurrentHabit mismatch: got %q", loaded.CurrentHabit)
	}
	if loaded.GetCalendarView() != calendar.WeekView {
		t.Errorf("CalendarView mismatch: got %q", loaded.CalendarView)
	}
	if loaded.GetChartView() != stats.ChartYearly {
		t.Errorf("ChartView mismatch: got %q", loaded.ChartView)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Locale: "zh"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "habits")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := withConfigHome(t)

	configDir := filepath.Join(tmpDir, "habits")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := withConfigHome(t)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "habits", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "habits.db")); os.IsNotExist(err) {
		t.Error("Expected habits.db to be created")
	}
}
