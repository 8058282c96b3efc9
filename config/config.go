package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/signals/num"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid config")

// Config describes one indicator run: where bars come from, which
// indicators to compute and how to report them.
type Config struct {
	Input      InputConfig     `json:"input" yaml:"input"`
	Output     OutputConfig    `json:"output" yaml:"output"`
	Logging    LoggingConfig   `json:"logging" yaml:"logging"`
	Indicators []IndicatorSpec `json:"indicators" yaml:"indicators"`
}

// InputConfig names the bar source.
type InputConfig struct {
	Bars       string `json:"bars" yaml:"bars"` // CSV path, "-" for stdin
	Instrument string `json:"instrument,omitempty" yaml:"instrument,omitempty"`
}

// OutputConfig controls result rows.
type OutputConfig struct {
	Path      string `json:"path,omitempty" yaml:"path,omitempty"` // empty for stdout
	Precision int32  `json:"precision,omitempty" yaml:"precision,omitempty"`
	Metrics   bool   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
	Trace bool   `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// IndicatorSpec selects one indicator and its parameters. Zero fields take
// the indicator's defaults. Multiplier and Width are decimal literals.
type IndicatorSpec struct {
	Name       string `json:"name" yaml:"name"`
	Interval   int    `json:"interval,omitempty" yaml:"interval,omitempty"`
	Short      int    `json:"short,omitempty" yaml:"short,omitempty"`
	Long       int    `json:"long,omitempty" yaml:"long,omitempty"`
	Signal     int    `json:"signal,omitempty" yaml:"signal,omitempty"`
	Multiplier string `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Width      string `json:"width,omitempty" yaml:"width,omitempty"`
	Smoothing  string `json:"smoothing,omitempty" yaml:"smoothing,omitempty"` // SMA, EMA, WSMA or DEMA
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`       // close, median or typical
}

var (
	Smoothings = []string{"SMA", "EMA", "WSMA", "DEMA"}
	Sources    = []string{"close", "median", "typical"}
)

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the structure of the configuration. Whether an indicator
// name is known is decided by whoever builds the indicators.
func (c *Config) Validate() error {
	if c.Input.Bars == "" {
		return fmt.Errorf("%w: input.bars is required", ErrInvalid)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("%w: output.precision must not be negative", ErrInvalid)
	}
	if len(c.Indicators) == 0 {
		return fmt.Errorf("%w: at least one indicator is required", ErrInvalid)
	}
	for i, spec := range c.Indicators {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("indicators[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single indicator spec.
func (s IndicatorSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	for field, v := range map[string]int{"interval": s.Interval, "short": s.Short, "long": s.Long, "signal": s.Signal} {
		if v < 0 {
			return fmt.Errorf("%w: %s: %s must not be negative", ErrInvalid, s.Name, field)
		}
	}
	for field, v := range map[string]string{"multiplier": s.Multiplier, "width": s.Width} {
		if v == "" {
			continue
		}
		d, err := num.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %s: %v", ErrInvalid, s.Name, field, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%w: %s: %s must not be negative", ErrInvalid, s.Name, field)
		}
	}
	if s.Smoothing != "" && !oneOf(strings.ToUpper(s.Smoothing), Smoothings) {
		return fmt.Errorf("%w: %s: smoothing must be one of %s", ErrInvalid, s.Name, strings.Join(Smoothings, ", "))
	}
	if s.Source != "" && !oneOf(strings.ToLower(s.Source), Sources) {
		return fmt.Errorf("%w: %s: source must be one of %s", ErrInvalid, s.Name, strings.Join(Sources, ", "))
	}
	return nil
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Default returns a configuration with a common indicator set.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Bars:       "./bars.csv",
			Instrument: "EUR_USD",
		},
		Output: OutputConfig{
			Precision: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Indicators: []IndicatorSpec{
			{Name: "SMA", Interval: 20},
			{Name: "EMA", Interval: 20},
			{Name: "RSI", Interval: 14},
			{Name: "MACD", Short: 12, Long: 26, Signal: 9},
			{Name: "BBANDS", Interval: 20, Multiplier: "2"},
			{Name: "ATR", Interval: 14},
		},
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel  = "SIGNALS_LOG_LEVEL"
	EnvPrecision = "SIGNALS_PRECISION"
	EnvBars      = "SIGNALS_BARS"
)

// ApplyEnv loads the given .env files (".env" when none are given; missing
// files are ignored) and overrides the configuration from SIGNALS_*
// variables. Variables already set in the process win over .env files.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvBars); v != "" {
		c.Input.Bars = v
	}
	if v := os.Getenv(EnvPrecision); v != "" {
		p, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		c.Output.Precision = int32(p)
	}
	return nil
}
