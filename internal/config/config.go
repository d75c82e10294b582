package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"pdfsmaller/internal/errors"
	"pdfsmaller/pkg/types"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSize is the ceiling applied when max_size is absent or malformed.
const DefaultMaxSize = 50 * 1024 * 1024 // 50 MiB

// DefaultPreferenceKey is the session key shared by uploader instances that
// do not ask for isolation.
const DefaultPreferenceKey = "pdfsmaller-upload-mode"

// Config represents the uploader configuration structure.
// It covers the attribute surface of the component plus the desktop
// front-end settings (drop directory, interface options).
type Config struct {
	Uploader struct {
		Accept             string `yaml:"accept"`              // Comma-separated extension / MIME rules
		MaxSize            string `yaml:"max_size"`            // Human-readable size ceiling, e.g. "50MB"
		DefaultMode        string `yaml:"default_mode"`        // "single" or "batch"
		RememberPreference bool   `yaml:"remember_preference"` // Persist the user-chosen mode for the session
		Multiple           bool   `yaml:"multiple"`            // Legacy multi-select flag, lowest priority
		Disabled           bool   `yaml:"disabled"`            // Disable the whole component
		ToggleDisabled     bool   `yaml:"toggle_disabled"`     // Disable only the mode toggle
		PreferenceKey      string `yaml:"preference_key"`      // Session key for the mode preference
	} `yaml:"uploader"`
	Interface struct {
		ReducedMotion bool `yaml:"reduced_motion"` // Collapse the transition window to zero
		Debug         bool `yaml:"debug"`          // Verbose logging
	} `yaml:"interface"`
	Watch struct {
		Enabled bool   `yaml:"enabled"` // Watch a drop directory for new files
		DropDir string `yaml:"drop_dir"`
	} `yaml:"watch"`
}

// LoadConfig loads configuration from the default location
// (~/.config/pdfsmaller/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "pdfsmaller", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Uploader.Accept != "" {
		cfg.Uploader.Accept = tempCfg.Uploader.Accept
	}
	if tempCfg.Uploader.MaxSize != "" {
		cfg.Uploader.MaxSize = tempCfg.Uploader.MaxSize
	}
	if tempCfg.Uploader.DefaultMode != "" {
		cfg.Uploader.DefaultMode = tempCfg.Uploader.DefaultMode
	}
	if tempCfg.Uploader.PreferenceKey != "" {
		cfg.Uploader.PreferenceKey = tempCfg.Uploader.PreferenceKey
	}
	cfg.Uploader.RememberPreference = tempCfg.Uploader.RememberPreference
	cfg.Uploader.Multiple = tempCfg.Uploader.Multiple
	cfg.Uploader.Disabled = tempCfg.Uploader.Disabled
	cfg.Uploader.ToggleDisabled = tempCfg.Uploader.ToggleDisabled

	cfg.Interface.ReducedMotion = tempCfg.Interface.ReducedMotion
	cfg.Interface.Debug = tempCfg.Interface.Debug

	cfg.Watch.Enabled = tempCfg.Watch.Enabled
	if tempCfg.Watch.DropDir != "" {
		cfg.Watch.DropDir = tempCfg.Watch.DropDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Uploader.Accept = ".pdf,application/pdf"
	cfg.Uploader.MaxSize = "50MB"
	cfg.Uploader.DefaultMode = ""
	cfg.Uploader.RememberPreference = true
	cfg.Uploader.Multiple = false
	cfg.Uploader.Disabled = false
	cfg.Uploader.ToggleDisabled = false
	cfg.Uploader.PreferenceKey = DefaultPreferenceKey

	cfg.Interface.ReducedMotion = false
	cfg.Interface.Debug = false

	cfg.Watch.Enabled = false
	cfg.Watch.DropDir = ""

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Uploader.DefaultMode != "" {
		if _, ok := types.ParseMode(c.Uploader.DefaultMode); !ok {
			return fmt.Errorf("invalid default_mode: %s", c.Uploader.DefaultMode)
		}
	}

	if c.Uploader.MaxSize != "" && !maxSizePattern.MatchString(c.Uploader.MaxSize) {
		return fmt.Errorf("invalid max_size: %s", c.Uploader.MaxSize)
	}

	if c.Uploader.PreferenceKey == "" {
		return fmt.Errorf("preference_key cannot be empty")
	}

	if c.Watch.Enabled && c.Watch.DropDir == "" {
		return fmt.Errorf("watch enabled but drop_dir is not set")
	}

	return nil
}

// FromAttributes builds a configuration from the component's attribute map.
// Presence booleans ("multiple", "disabled", "toggle-disabled") are true when
// the key exists with any value; "remember-preference" is enabled unless
// absent-with-"false". Invalid values never abort construction: they are
// returned as attribute errors and the attribute is ignored.
func FromAttributes(attrs map[string]string) (*Config, []*errors.AttributeError) {
	cfg := defaultConfig()
	var attrErrs []*errors.AttributeError

	has := func(name string) bool {
		_, ok := attrs[name]
		return ok
	}

	if v, ok := attrs["accept"]; ok && strings.TrimSpace(v) != "" {
		cfg.Uploader.Accept = v
	}

	if v, ok := attrs["max-size"]; ok {
		if maxSizePattern.MatchString(v) {
			cfg.Uploader.MaxSize = v
		} else {
			attrErrs = append(attrErrs, errors.NewAttributeError(
				"ignoring malformed size attribute", "max-size", v,
				errors.AttributeValidationError))
		}
	}

	if v, ok := attrs["default-mode"]; ok {
		if _, valid := types.ParseMode(v); valid {
			cfg.Uploader.DefaultMode = v
		} else {
			attrErrs = append(attrErrs, errors.NewAttributeError(
				"ignoring invalid mode attribute", "default-mode", v,
				errors.AttributeValidationError))
		}
	}

	cfg.Uploader.Multiple = has("multiple")
	cfg.Uploader.Disabled = has("disabled")
	cfg.Uploader.ToggleDisabled = has("toggle-disabled")

	// remember-preference is on unless explicitly "false".
	if v, ok := attrs["remember-preference"]; ok && strings.EqualFold(v, "false") {
		cfg.Uploader.RememberPreference = false
	} else {
		cfg.Uploader.RememberPreference = true
	}

	if v, ok := attrs["preference-key"]; ok && v != "" {
		cfg.Uploader.PreferenceKey = v
	}

	return cfg, attrErrs
}

// DefaultMode resolves the configured default mode, or empty when unset or
// invalid.
func (c *Config) DefaultMode() (types.Mode, bool) {
	if c.Uploader.DefaultMode == "" {
		return "", false
	}
	return types.ParseMode(c.Uploader.DefaultMode)
}

// MaxSizeBytes parses the configured size ceiling. Malformed values fall
// back to DefaultMaxSize.
func (c *Config) MaxSizeBytes() int64 {
	return ParseMaxSize(c.Uploader.MaxSize)
}

var maxSizePattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB)\s*$`)

// ParseMaxSize converts a human-readable size string ("50MB", "1.5 GB")
// into bytes. Anything outside the accepted grammar yields DefaultMaxSize.
func ParseMaxSize(s string) int64 {
	m := maxSizePattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultMaxSize
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultMaxSize
	}

	var unit float64
	switch strings.ToUpper(m[2]) {
	case "B":
		unit = 1
	case "KB":
		unit = 1024
	case "MB":
		unit = 1024 * 1024
	case "GB":
		unit = 1024 * 1024 * 1024
	}

	return int64(math.Round(value * unit))
}

// FormatSize renders a byte count the way the component reports sizes in
// error strings ("2.5MB").
func FormatSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024*1024:
		return trimZero(fmt.Sprintf("%.1f", float64(bytes)/(1024*1024*1024))) + "GB"
	case bytes >= 1024*1024:
		return trimZero(fmt.Sprintf("%.1f", float64(bytes)/(1024*1024))) + "MB"
	case bytes >= 1024:
		return trimZero(fmt.Sprintf("%.1f", float64(bytes)/1024)) + "KB"
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Uploader.Accept = ".pdf,.txt,application/pdf"
	cfg.Uploader.MaxSize = "10MB"
	cfg.Uploader.RememberPreference = false
	return cfg
}
