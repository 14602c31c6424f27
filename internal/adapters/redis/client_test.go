package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/internal/adapters/config"
	"github.com/NIRMITI18/health-care-agent/internal/testsupport"
)

func TestNewClient(t *testing.T) {
	cfg := testsupport.LoadRedisConfigFromEnv(t)
	testsupport.NewRedisClient(t, cfg) // skips when Redis is down

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Health(context.Background()))
	assert.NotNil(t, client.Client())
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := NewClient(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
