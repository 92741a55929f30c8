package config

import (
	"github.com/spf13/viper"
)

// DigestConfig configures the digest job. An empty Secret means every caller
// of the trigger endpoint is authorized; an empty CronSpec disables the
// in-process schedule, leaving the HTTP trigger as the only entry point.
type DigestConfig struct {
	Secret   string `mapstructure:"secret"`
	CronSpec string `mapstructure:"cron_spec"`
}

func (config DigestConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("digest.secret", "DIGEST_SECRET"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("digest.cron_spec", "DIGEST_CRON_SPEC"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
