package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

func (config ServerConfig) bindEnvironmentVariables() error {
	var errs []error

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", 4*time.Minute)

	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("server.request_timeout", "REQUEST_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
