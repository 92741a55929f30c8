package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Origin OriginConfig `mapstructure:"origin"`
	Mailer MailerConfig `mapstructure:"mailer"`
	Digest DigestConfig `mapstructure:"digest"`
	Logger LoggerConfig `mapstructure:"logger"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, _ := os.LookupEnv("CONFIG_PATH"); value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func bindEnvironmentVariables() error {
	var errs []error

	server, db, cache := ServerConfig{}, DBConfig{}, CacheConfig{}
	origin, mailer, digest, logger := OriginConfig{}, MailerConfig{}, DigestConfig{}, LoggerConfig{}

	if err := server.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := cache.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("CacheConfig: %w", err))
	}

	if err := origin.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("OriginConfig: %w", err))
	}

	if err := mailer.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("MailerConfig: %w", err))
	}

	if err := digest.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DigestConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Cache.validate(); err != nil {
		errs = append(errs, fmt.Errorf("CacheConfig: %w", err))
	}

	if err := config.Origin.validate(); err != nil {
		errs = append(errs, fmt.Errorf("OriginConfig: %w", err))
	}

	if err := config.Mailer.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MailerConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func createMultiError(errs []error) error {
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}
