package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ConfigFileEnv names the environment variable holding an optional YAML
// config file path.
const ConfigFileEnv = "DAYLOG_CONFIG"

// Config holds all configuration for the application.
type Config struct {
	DBPath           string `yaml:"db_path"`
	VaultPath        string `yaml:"vault_path"`
	DailyNotesFolder string `yaml:"daily_notes_folder"`

	HealthBaseURL string `yaml:"health_base_url"`
	HealthAPIKey  string `yaml:"health_api_key"`

	LLMBaseURL   string `yaml:"llm_base_url"`
	LLMAPIKey    string `yaml:"llm_api_key"`
	LLMModelName string `yaml:"llm_model"`
	LLMMaxTokens int    `yaml:"llm_max_tokens"`

	SyncWindowDays int    `yaml:"sync_window_days"`
	WeekStart      string `yaml:"week_start"`

	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	LLMTimeout      time.Duration `yaml:"llm_timeout"`
	VaultTimeout    time.Duration `yaml:"vault_timeout"`

	APIPort   string `yaml:"api_port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DBPath:           "./data/daylog.db",
		DailyNotesFolder: "Daily Notes",
		LLMBaseURL:       "http://localhost:8080",
		LLMModelName:     "Llama-3.1-8B-Instruct",
		LLMMaxTokens:     1024,
		SyncWindowDays:   7,
		WeekStart:        "sunday",
		ProviderTimeout:  30 * time.Second,
		LLMTimeout:       60 * time.Second,
		VaultTimeout:     10 * time.Second,
		APIPort:          "9000",
		LogLevel:         "info",
		LogFormat:        LogFormatText,
	}
}

// Load reads configuration from an optional YAML file and environment
// variables, and returns a validated Config.
// If a .env file exists in the current directory or a parent directory, it
// is loaded first. Environment variables already set take precedence over
// .env file values, and environment variables override the YAML file.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := Default()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the nearest .env file, searching up to five parents.
func loadDotEnv() {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// loadFile decodes a YAML config file over cfg, expanding ${VAR} references.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.VaultPath, "VAULT_PATH")
	setString(&cfg.DailyNotesFolder, "DAILY_NOTES_FOLDER")
	setString(&cfg.HealthBaseURL, "HEALTH_BASE_URL")
	setString(&cfg.HealthAPIKey, "HEALTH_API_KEY")
	setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setString(&cfg.LLMAPIKey, "LLM_API_KEY")
	setString(&cfg.LLMModelName, "LLM_MODEL")
	setString(&cfg.WeekStart, "WEEK_START")
	setString(&cfg.APIPort, "API_PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	return errors.Join(
		setInt(&cfg.LLMMaxTokens, "LLM_MAX_TOKENS"),
		setInt(&cfg.SyncWindowDays, "SYNC_WINDOW_DAYS"),
		setDuration(&cfg.ProviderTimeout, "PROVIDER_TIMEOUT"),
		setDuration(&cfg.LLMTimeout, "LLM_TIMEOUT"),
		setDuration(&cfg.VaultTimeout, "VAULT_TIMEOUT"),
	)
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	*dst = d
	return nil
}

// normalize lowercases the fields that Validate checks against fixed values.
func (c *Config) normalize() {
	for _, field := range []*string{&c.WeekStart, &c.LogLevel, &c.LogFormat} {
		*field = strings.ToLower(strings.TrimSpace(*field))
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.DailyNotesFolder, validation.Required),
		validation.Field(&c.LLMBaseURL, validation.Required),
		validation.Field(&c.LLMModelName, validation.Required),
		validation.Field(&c.LLMMaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&c.SyncWindowDays, validation.Required, validation.Min(1), validation.Max(366)),
		validation.Field(&c.WeekStart, validation.Required, validation.In("sunday", "monday")),
		validation.Field(&c.ProviderTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.LLMTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.VaultTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.APIPort, validation.Required, validation.By(validPort)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

func validPort(value any) error {
	s, _ := value.(string)
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("must be a port between 1 and 65535")
	}
	return nil
}

// FirstWeekday returns the configured first day of the week.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// VaultConfigured reports whether a note vault path is set.
func (c *Config) VaultConfigured() bool {
	return c.VaultPath != ""
}

// HealthConfigured reports whether a health data provider is set.
func (c *Config) HealthConfigured() bool {
	return c.HealthBaseURL != ""
}
