package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type cacheBackend string

const (
	BackendSqlite cacheBackend = "sqlite"
	BackendRedis  cacheBackend = "redis"
)

// CacheConfig controls the two cache tiers. MemoryTTL is deliberately much
// shorter than PersistentTTL: the in-process tier absorbs bursts, the
// persistent one absorbs repeat queries across restarts and instances.
type CacheConfig struct {
	Backend       cacheBackend  `mapstructure:"backend"`
	RedisURL      string        `mapstructure:"redis_url"`
	MemoryTTL     time.Duration `mapstructure:"memory_ttl"`
	PersistentTTL time.Duration `mapstructure:"persistent_ttl"`
}

func (config CacheConfig) validate() error {

	switch config.Backend {
	case BackendSqlite:
	case BackendRedis:
		if config.RedisURL == "" {
			return fmt.Errorf("missing variable: redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid cache backend: %v", config.Backend)
	}

	if config.MemoryTTL >= config.PersistentTTL {
		return fmt.Errorf("memory_ttl must be shorter than persistent_ttl")
	}

	return nil
}

func (config CacheConfig) bindEnvironmentVariables() error {
	var errs []error

	viper.SetDefault("cache.backend", string(BackendSqlite))
	viper.SetDefault("cache.memory_ttl", time.Hour)
	viper.SetDefault("cache.persistent_ttl", 7*24*time.Hour)

	if err := viper.BindEnv("cache.backend", "CACHE_BACKEND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cache.redis_url", "REDIS_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cache.memory_ttl", "CACHE_MEMORY_TTL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cache.persistent_ttl", "CACHE_PERSISTENT_TTL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
