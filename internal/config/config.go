// ABOUTME: Habits configuration management and view preference persistence.
// ABOUTME: Handles data directory, label locale, current habit, and the storage factory.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/stats"
	"github.com/harperreed/habits/internal/storage"
)

// DBFileName is the SQLite file created inside the data directory.
const DBFileName = "habits.db"

// Config stores habits tool configuration.
type Config struct {
	// DataDir is the root directory for data storage.
	// habits.db and logs/ live here. Supports ~ expansion.
	// Defaults to ~/.local/share/habits.
	DataDir string `json:"data_dir,omitempty"`

	// Locale selects chart and calendar labels: "zh" (default) or "en".
	Locale string `json:"locale,omitempty"`

	// CurrentHabit is the ID of the habit commands act on when --habit is not given.
	CurrentHabit string `json:"current_habit,omitempty"`

	// CalendarView is the last calendar view mode: "month" (default) or "week".
	CalendarView string `json:"calendar_view,omitempty"`

	// ChartView is the last chart mode: "monthly" (default) or "yearly".
	ChartView string `json:"chart_view,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLocale returns the label locale.
func (c *Config) GetLocale() stats.Locale {
	return stats.ParseLocale(c.Locale)
}

// GetCalendarView returns the persisted calendar view mode.
func (c *Config) GetCalendarView() calendar.ViewMode {
	return calendar.ParseViewMode(c.CalendarView)
}

// SetCalendarView records the calendar view mode.
func (c *Config) SetCalendarView(v calendar.ViewMode) {
	c.CalendarView = string(v)
}

// GetChartView returns the persisted chart mode.
func (c *Config) GetChartView() stats.ChartMode {
	return stats.ParseChartMode(c.ChartView)
}

// SetChartView records the chart mode.
func (c *Config) SetChartView(m stats.ChartMode) {
	c.ChartView = string(m)
}

// DBPath returns the database file path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), DBFileName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "habits", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
