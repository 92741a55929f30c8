package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type MailerConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Sender   string `mapstructure:"sender"`
}

func (config MailerConfig) validate() error {

	var missingFields []string

	if config.Endpoint == "" {
		missingFields = append(missingFields, "endpoint")
	}

	if config.APIKey == "" {
		missingFields = append(missingFields, "api_key")
	}

	if config.Sender == "" {
		missingFields = append(missingFields, "sender")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config MailerConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("mailer.endpoint", "MAILER_ENDPOINT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("mailer.api_key", "MAILER_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("mailer.sender", "MAILER_SENDER"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
