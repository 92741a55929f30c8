package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	os.Setenv("DB_CONNECTION_STRING", "overrideConnectionString")
	os.Setenv("CACHE_BACKEND", "redis")
	os.Setenv("REDIS_URL", "redis://localhost:6379/0")
	os.Setenv("CACHE_MEMORY_TTL", "30m")
	os.Setenv("CACHE_PERSISTENT_TTL", "72h")
	os.Setenv("ORIGIN_API_KEY", "overrideOriginKey")
	os.Setenv("MAILER_ENDPOINT", "https://mail.example.com/send")
	os.Setenv("MAILER_API_KEY", "overrideMailerKey")
	os.Setenv("MAILER_SENDER", "digest@example.com")
	os.Setenv("DIGEST_SECRET", "overrideSecret")
	os.Setenv("DIGEST_CRON_SPEC", "0 8 * * *")
	os.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Get()

	assert.Equal(t, "overrideConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MemoryTTL)
	assert.Equal(t, 72*time.Hour, cfg.Cache.PersistentTTL)
	assert.Equal(t, "overrideOriginKey", cfg.Origin.APIKey)
	assert.Equal(t, "https://mail.example.com/send", cfg.Mailer.Endpoint)
	assert.Equal(t, "overrideMailerKey", cfg.Mailer.APIKey)
	assert.Equal(t, "digest@example.com", cfg.Mailer.Sender)
	assert.Equal(t, "overrideSecret", cfg.Digest.Secret)
	assert.Equal(t, "0 8 * * *", cfg.Digest.CronSpec)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}
