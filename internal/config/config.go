// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/taskmate-ai/taskmate/internal/profile"
)

// Config holds the application configuration.
type Config struct {
	Profile ProfileConfig `toml:"profile"`
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
}

// ProfileConfig holds the default profile used before a user saves one.
type ProfileConfig struct {
	User            string `toml:"user"`             // profile key, e.g. an email
	WorkStart       string `toml:"work_start"`       // "HH:MM"
	WorkEnd         string `toml:"work_end"`         // "HH:MM"
	BreakMinutes    int    `toml:"break_minutes"`    // preferred break length
	EnergyMorning   string `toml:"energy_morning"`   // "low", "medium", "high"
	EnergyAfternoon string `toml:"energy_afternoon"` //
	EnergyEvening   string `toml:"energy_evening"`   //
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "groq", "ollama"
	Model    string `toml:"model"`    // e.g. "llama-3.3-70b-versatile"
	BaseURL  string `toml:"base_url"` // override for self-hosted providers
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			User:            "default",
			WorkStart:       "09:00",
			WorkEnd:         "17:00",
			BreakMinutes:    15,
			EnergyMorning:   "high",
			EnergyAfternoon: "medium",
			EnergyEvening:   "low",
		},
		LLM: LLMConfig{
			Provider: "groq",
			Model:    "llama-3.3-70b-versatile",
			BaseURL:  "",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// DefaultProfile builds a profile.Profile from the configured defaults.
func (c *Config) DefaultProfile() *profile.Profile {
	return &profile.Profile{
		WorkHours: profile.WorkHours{
			Start: c.Profile.WorkStart,
			End:   c.Profile.WorkEnd,
		},
		BreakDurationMin: c.Profile.BreakMinutes,
		EnergyLevels: profile.EnergyLevels{
			Morning:   c.Profile.EnergyMorning,
			Afternoon: c.Profile.EnergyAfternoon,
			Evening:   c.Profile.EnergyEvening,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskmate.db"
	}
	return filepath.Join(home, ".local", "share", "taskmate", "taskmate.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskmate", "config.toml")
}

// Load loads configuration from the default path, merging with defaults
// and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then
// applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// config. Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Profile overrides
	if v := os.Getenv("TASKMATE_USER"); v != "" {
		cfg.Profile.User = v
	}
	if v := os.Getenv("TASKMATE_WORK_START"); v != "" {
		cfg.Profile.WorkStart = v
	}
	if v := os.Getenv("TASKMATE_WORK_END"); v != "" {
		cfg.Profile.WorkEnd = v
	}
	if v := os.Getenv("TASKMATE_BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Profile.BreakMinutes = n
		}
	}

	// LLM overrides
	if v := os.Getenv("TASKMATE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TASKMATE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TASKMATE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Storage overrides
	if v := os.Getenv("TASKMATE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Profile.User == "" {
		return errors.New("profile user must be set")
	}
	if err := c.DefaultProfile().Validate(); err != nil {
		return err
	}
	if c.LLM.Provider == "" {
		return errors.New("llm provider must be set")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
