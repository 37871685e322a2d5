package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/format"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "lpp.toml"

// Config holds the settings shared by every lpp subcommand
type Config struct {
	Locale         string      `toml:"locale" yaml:"locale"`
	LocalesDir     string      `toml:"locales_dir" yaml:"locales_dir"`
	Output         string      `toml:"output" yaml:"output"`
	Prompt         string      `toml:"prompt" yaml:"prompt"`
	HistoryFile    string      `toml:"history_file" yaml:"history_file"`
	MaxHistory     int         `toml:"max_history" yaml:"max_history"`
	RequireVersion string      `toml:"require_version" yaml:"require_version"`
	Verbose        bool        `toml:"verbose" yaml:"verbose"`
	Debug          bool        `toml:"debug" yaml:"debug"`
	Serve          ServeConfig `toml:"serve" yaml:"serve"`
	Watch          WatchConfig `toml:"watch" yaml:"watch"`

	// Path is the file the config was read from, empty for defaults
	Path string `toml:"-" yaml:"-"`
}

// ServeConfig holds the HTTP/3 API settings
type ServeConfig struct {
	Addr            string   `toml:"addr" yaml:"addr"`
	CertFile        string   `toml:"cert_file" yaml:"cert_file"`
	KeyFile         string   `toml:"key_file" yaml:"key_file"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// WatchConfig holds the file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for config parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Locale:      "es",
		Output:      string(format.KindTree),
		Prompt:      ">> ",
		HistoryFile: DefaultHistoryFile(),
		MaxHistory:  1000,
		Serve: ServeConfig{
			Addr:            ":8443",
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Watch: WatchConfig{
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// DefaultHistoryFile returns ~/.lpp_history, or a relative name when the
// home directory is unknown.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lpp_history"
	}
	return filepath.Join(home, ".lpp_history")
}

// LoadConfig reads the configuration at path. An empty path falls back to
// DefaultConfigFile in the working directory, and to defaults when that is
// absent too. Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate checks field values and the required tool version
func (c *Config) Validate() error {
	if c.Locale == "" {
		return errors.New("locale must not be empty")
	}
	if _, err := format.ParseKind(c.Output); err != nil {
		return err
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("max_history must not be negative, got %d", c.MaxHistory)
	}
	if (c.Serve.CertFile == "") != (c.Serve.KeyFile == "") {
		return errors.New("serve.cert_file and serve.key_file must be set together")
	}
	return CheckVersion(c.RequireVersion)
}

// WriteTOML encodes the configuration as TOML
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return nil
}

// SaveConfig writes the configuration as TOML, refusing to overwrite
func (c *Config) SaveConfig(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := c.WriteTOML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
