// Package config holds the run configuration of the indicator report tool.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats for reports.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config controls which indicators are computed and how reports are written.
type Config struct {
	// Version is the tool version the configuration was written for.
	Version string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Tool version the configuration targets (major and minor must match)"`
	// Symbol labels the report, e.g. BTC.
	Symbol string `yaml:"symbol,omitempty" json:"symbol,omitempty" jsonschema:"title=Symbol,description=Asset symbol shown in the report" validate:"omitempty,max=32"`
	// RSIPeriod is the number of price changes the RSI looks back over.
	RSIPeriod int `yaml:"rsiPeriod" json:"rsiPeriod" jsonschema:"title=RSI Period,minimum=1,default=14" default:"14" validate:"gte=1"`
	// EMAPeriod sets the EMA multiplier 2/(period+1).
	EMAPeriod int `yaml:"emaPeriod" json:"emaPeriod" jsonschema:"title=EMA Period,minimum=1,default=7" default:"7" validate:"gte=1"`
	// Indicators restricts the report to these indicators. Empty means all.
	Indicators []types.IndicatorType `yaml:"indicators,omitempty" json:"indicators,omitempty" jsonschema:"title=Indicators,description=Indicators to compute; empty computes all,enum=rsi,enum=ma,enum=ema,enum=macd,enum=atr,enum=stochastic_oscillator,enum=roc,enum=obv_proxy" validate:"omitempty,unique,dive,oneof=rsi ma ema macd atr stochastic_oscillator roc obv_proxy"`
	// Precision is the number of decimals values are rounded to in reports.
	Precision int `yaml:"precision" json:"precision" jsonschema:"title=Precision,minimum=0,maximum=12,default=2" default:"2" validate:"gte=0,lte=12"`
	// Format is the report encoding.
	Format string `yaml:"format" json:"format" jsonschema:"title=Format,enum=json,enum=yaml,default=json" default:"json" validate:"oneof=json yaml"`
	// Workers bounds how many series a batch computes at once.
	Workers int `yaml:"workers" json:"workers" jsonschema:"title=Workers,minimum=1,maximum=64,default=4" default:"4" validate:"gte=1,lte=64"`
	// LogLevel is the zap level name.
	LogLevel string `yaml:"logLevel" json:"logLevel" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" default:"info" validate:"oneof=debug info warn error"`
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	return cfg, nil
}

// Load reads a YAML configuration file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Parse decodes a YAML document on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and version compatibility.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return version.CheckVersionCompatibility(version.GetVersion(), c.Version)
}

// EnabledIndicators returns the selected indicators in report order.
func (c *Config) EnabledIndicators() []types.IndicatorType {
	if len(c.Indicators) == 0 {
		return types.AllIndicatorTypes()
	}

	enabled := make([]types.IndicatorType, 0, len(c.Indicators))

	for _, indicator := range types.AllIndicatorTypes() {
		if slices.Contains(c.Indicators, indicator) {
			enabled = append(enabled, indicator)
		}
	}

	return enabled
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
