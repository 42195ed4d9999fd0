package buflog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all sink configuration values
type Config struct {
	// File placement
	Name      string `toml:"name"` // Base name for log files
	Directory string `toml:"directory"`

	// Severity thresholds, by name (warning, info, debug, detail)
	Level     string `toml:"level"`      // Minimum severity persisted to file
	EchoLevel string `toml:"echo_level"` // Minimum severity echoed to stderr

	// Buffer and size limits
	BufferSize int64 `toml:"buffer_size"` // Bytes per buffer slot
	RotateSize int64 `toml:"rotate_size"` // Bytes written to a file before rotation

	// Timers
	FlushIntervalS     int64 `toml:"flush_interval_s"`     // Forced flush interval
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // 0 disables heartbeat

	// Output shape
	PrettyPrint bool `toml:"pretty_print"` // Severity labels instead of numeric values
	Compress    bool `toml:"compress"`     // Write files through a deflate stream
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Name:      "log",
	Directory: "./log",

	Level:     "warning",
	EchoLevel: "warning",

	BufferSize: 2048 * 1024,
	RotateSize: 100 * 1024 * 1024,

	FlushIntervalS:     60,
	HeartbeatIntervalS: 0,

	PrettyPrint: false,
	Compress:    false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("buflog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "buflog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration.
// An unrecognized level name is a fatal configuration error.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("log name cannot be empty")
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("log directory cannot be empty")
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	if _, err := ParseLevel(c.EchoLevel); err != nil {
		return err
	}

	if c.BufferSize <= 0 {
		return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
	}

	if c.RotateSize <= 0 {
		return fmtErrorf("rotate_size must be positive: %d", c.RotateSize)
	}

	if c.FlushIntervalS <= 0 {
		return fmtErrorf("flush_interval_s must be positive: %d", c.FlushIntervalS)
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
