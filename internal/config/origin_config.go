package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type OriginConfig struct {
	APIKey               string  `mapstructure:"api_key"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

func (config OriginConfig) validate() error {
	if config.APIKey == "" {
		return fmt.Errorf("missing variable: origin api_key")
	}
	return nil
}

func (config OriginConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("origin.api_key", "ORIGIN_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("origin.max_requests_per_second", "ORIGIN_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
