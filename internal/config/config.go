// Package config loads CLI configuration from viper into typed settings and
// converts them into a figma.Config.
package config

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the on-disk and environment configuration of the CLI.
type Config struct {
	APIToken          string                        `mapstructure:"api_token"           yaml:"api_token,omitempty"`
	BaseURL           string                        `mapstructure:"base_url"            yaml:"base_url,omitempty"`
	RetryMax          int                           `mapstructure:"retry_max"           yaml:"retry_max,omitempty"`
	RetryWaitUnit     time.Duration                 `mapstructure:"retry_wait_unit"     yaml:"retry_wait_unit,omitempty"`
	HTTPTimeout       time.Duration                 `mapstructure:"http_timeout"        yaml:"http_timeout,omitempty"`
	LeaseWaitInterval time.Duration                 `mapstructure:"lease_wait_interval" yaml:"lease_wait_interval,omitempty"`
	Buckets           map[string]figma.BucketConfig `mapstructure:"buckets"             yaml:"buckets,omitempty"`
	NATS              NATSConfig                    `mapstructure:"nats"                yaml:"nats,omitempty"`
	Output            string                        `mapstructure:"output"              yaml:"output,omitempty"`
	Verbose           bool                          `mapstructure:"verbose"             yaml:"verbose,omitempty"`
}

// NATSConfig configures the optional dispatch event sink.
type NATSConfig struct {
	URL     string `mapstructure:"url"     yaml:"url,omitempty"`
	Subject string `mapstructure:"subject" yaml:"subject,omitempty"`
}

// SetDefaults registers every key with v so that environment overrides are
// visible to AllSettings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_token", "")
	v.SetDefault("base_url", constants.DefaultBaseURL)
	v.SetDefault("retry_max", constants.DefaultRetryMax)
	v.SetDefault("retry_wait_unit", constants.DefaultRetryWaitUnit)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("lease_wait_interval", constants.DefaultLeaseWaitInterval)
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", constants.DefaultNATSSubject)
	v.SetDefault("output", constants.FormatTable)
	v.SetDefault("verbose", false)
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("creating config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	switch cfg.Output {
	case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, cfg.Output)
	}

	return cfg, nil
}

// ToClientConfig builds the library configuration. Bucket keys are checked
// against the known categories.
func (c *Config) ToClientConfig(logger figma.Logger) (*figma.Config, error) {
	buckets := make(map[figma.Category]figma.BucketConfig, len(c.Buckets))

	for name, bucket := range c.Buckets {
		category := figma.Category(name)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %s", constants.ErrUnknownCategory, name)
		}

		buckets[category] = bucket
	}

	return &figma.Config{
		BaseURL:           c.BaseURL,
		APIToken:          c.APIToken,
		RetryMax:          c.RetryMax,
		RetryWaitUnit:     c.RetryWaitUnit,
		HTTPTimeout:       c.HTTPTimeout,
		LeaseWaitInterval: c.LeaseWaitInterval,
		Buckets:           buckets,
		Logger:            logger,
		Debug:             c.Verbose,
		NATSURL:           c.NATS.URL,
		NATSSubject:       c.NATS.Subject,
	}, nil
}
