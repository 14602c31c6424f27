package testsupport

import (
	"fmt"
	"os"
	"testing"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
)

// LoadRedisConfigFromEnv reads the Redis section for integration tests.
// Defaults to a local server on DB 1 so a developer Redis on DB 0 is left alone.
// Tests are skipped in short mode.
func LoadRedisConfigFromEnv(t *testing.T) config.RedisConfig {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	return config.RedisConfig{
		Host:     valueWithDefault("REDIS_HOST", "localhost"),
		Port:     intValue("REDIS_PORT", 6379),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       intValue("REDIS_TEST_DB", 1),
	}
}

func valueWithDefault(key string, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func intValue(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		_, err := fmt.Sscanf(val, "%d", &parsed)
		if err == nil {
			return parsed
		}
	}

	return fallback
}
