package config

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/logging"
)

// Config holds every spacedlist setting.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Script ScriptConfig `toml:"script"`
	View   ViewConfig   `toml:"view"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Format is console or json.
	Format string `toml:"format"`
}

// ScriptConfig configures the Lua driver.
type ScriptConfig struct {
	// Path is the script to run. Empty means no script.
	Path string `toml:"path"`
	// CallLimit caps the spaced calls a script makes per run. Zero disables the cap.
	CallLimit int64 `toml:"call_limit"`
	// Watch reruns the script whenever the file is written.
	Watch bool `toml:"watch"`
	// Bias is the default tie-break for anchor sets, left or right.
	Bias string `toml:"bias"`
}

// ViewConfig configures the terminal ruler.
type ViewConfig struct {
	Enabled bool `toml:"enabled"`
	// Width is the number of columns the axis spans.
	Width int `toml:"width"`
	// Scale is the number of positions per column.
	Scale uint `toml:"scale"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatConsole),
		},
		Script: ScriptConfig{
			CallLimit: 10_000_000,
			Bias:             "left",
		},
		View: ViewConfig{
			Width: 80,
			Scale: 1,
		},
	}
}

// Load reads and validates the file at path. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrapf(err, "reading config file %s", path)
	}
	return parse(path, data)
}

// Parse decodes and validates TOML data. Keys absent from data keep their
// default values.
func Parse(data []byte) (Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, decodeError(source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", source)
	}
	return cfg, nil
}

func decodeError(source string, err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return errors.Mark(errors.Wrapf(err, "%s", source), ErrUnknownKey)
	}
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// Validate checks every setting and returns the first failure.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Key: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return &ValidationError{Key: "log.format", Message: "must be console or json", Value: c.Log.Format}
	}
	if c.Script.CallLimit < 0 {
		return &ValidationError{Key: "script.call_limit", Message: "must not be negative", Value: c.Script.CallLimit}
	}
	if _, err := anchor.ParseBias(c.Script.Bias); err != nil {
		return &ValidationError{Key: "script.bias", Message: "must be left or right", Value: c.Script.Bias}
	}
	if c.View.Width <= 0 {
		return &ValidationError{Key: "view.width", Message: "must be positive", Value: c.View.Width}
	}
	if c.View.Scale == 0 {
		return &ValidationError{Key: "view.scale", Message: "must be positive", Value: c.View.Scale}
	}
	return nil
}

// Logging converts the log settings into a logger configuration writing to out.
func (c LogConfig) Logging(out io.Writer) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Level)
	cfg.Format = logging.Format(c.Format)
	if out != nil {
		cfg.Output = out
	}
	return cfg
}

// AnchorBias returns the configured anchor bias. Validate guarantees it parses.
func (c ScriptConfig) AnchorBias() anchor.Bias {
	b, _ := anchor.ParseBias(c.Bias)
	return b
}
