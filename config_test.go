package lotto

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigManager_LoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name:     "default_config",
			setupEnv: func(t *testing.T) {},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, int64(DefaultTicketPrice), config.Game.TicketPrice)
				assert.Zero(t, config.Game.Seed)
				assert.Equal(t, int64(DefaultFirstPrize), config.Game.Prizes.First)
				assert.Equal(t, int64(DefaultFifthPrize), config.Game.Prizes.Fifth)
				assert.Equal(t, "info", config.Log.Level)
				assert.False(t, config.Redis.Enabled)
				assert.Equal(t, "localhost:6379", config.Redis.Addr)
				assert.Equal(t, 24*time.Hour, config.Redis.RoundTTL)
				assert.Equal(t, 100*time.Millisecond, config.Redis.RetryInterval)
				assert.True(t, config.CircuitBreaker.Enabled)
				assert.Equal(t, 30*time.Second, config.CircuitBreaker.Timeout)
			},
		},
		{
			name: "environment_variables",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOTTO_GAME_TICKET_PRICE", "2000")
				t.Setenv("LOTTO_GAME_SEED", "42")
				t.Setenv("LOTTO_LOG_LEVEL", "debug")
				t.Setenv("LOTTO_REDIS_ENABLED", "true")
				t.Setenv("LOTTO_REDIS_ADDR", "redis-ledger:6379")
				t.Setenv("LOTTO_REDIS_ROUND_TTL", "1h")
			},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, int64(2000), config.Game.TicketPrice)
				assert.Equal(t, int64(42), config.Game.Seed)
				assert.Equal(t, "debug", config.Log.Level)
				assert.True(t, config.Redis.Enabled)
				assert.Equal(t, "redis-ledger:6379", config.Redis.Addr)
				assert.Equal(t, time.Hour, config.Redis.RoundTTL)
			},
		},
		{
			name: "invalid_ticket_price",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOTTO_GAME_TICKET_PRICE", "0")
			},
			expectError: true,
		},
		{
			name: "inverted_prizes",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOTTO_GAME_PRIZES_FIFTH", "3000000000")
			},
			expectError: true,
		},
		{
			name: "redis_enabled_without_pool",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOTTO_REDIS_ENABLED", "true")
				t.Setenv("LOTTO_REDIS_POOL_SIZE", "0")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv(t)

			cm := NewConfigManager()
			config, err := cm.LoadConfig()
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cm.GetConfig())
				return
			}

			require.NoError(t, err)
			tt.validate(t, config)
			assert.Same(t, config, cm.GetConfig())
		})
	}
}

const testConfigYAML = `
game:
  ticket_price: 500
  seed: 7
  prizes:
    first: 1000000
    second: 50000
    third: 5000
    fourth: 500
    fifth: 50
log:
  level: warn
circuit_breaker:
  enabled: false
`

func TestConfigManager_LoadFromFile(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cm := NewConfigManagerWithFile(path)
	config, err := cm.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, path, cm.ConfigFileUsed())
	assert.Equal(t, int64(500), config.Game.TicketPrice)
	assert.Equal(t, int64(7), config.Game.Seed)
	assert.Equal(t, "warn", config.Log.Level)
	assert.False(t, config.CircuitBreaker.Enabled)
	// 文件未设置的值使用默认值
	assert.Equal(t, DefaultRedisAddr, config.Redis.Addr)

	prizes, err := config.Game.PrizeTable()
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), prizes.Prize(RankFirst))
	assert.Equal(t, int64(50), prizes.Prize(RankFifth))

	t.Run("env_overrides_file", func(t *testing.T) {
		t.Setenv("LOTTO_GAME_TICKET_PRICE", "250")

		config, err := cm.ReloadConfig()
		require.NoError(t, err)
		assert.Equal(t, int64(250), config.Game.TicketPrice)
	})
}

func TestConfigManager_MalformedFile(t *testing.T) {
	cm := NewConfigManagerWithFile(writeConfigFile(t, "game: [\n"))
	_, err := cm.LoadConfig()
	assert.Error(t, err)
}

func TestConfigManager_WatchConfig(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cm := NewConfigManagerWithFile(path)
	_, err := cm.LoadConfig()
	require.NoError(t, err)

	var price atomic.Int64
	cm.WatchConfig(NewSilentLogger(), func(c *Config) { price.Store(c.Game.TicketPrice) })

	updated := []byte("game:\n  ticket_price: 300\n")
	require.NoError(t, os.WriteFile(path, updated, 0o644))

	require.Eventually(t, func() bool { return price.Load() == 300 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, int64(300), cm.GetConfig().Game.TicketPrice)
}

func TestNewConfigManagerFromConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cm, err := NewConfigManagerFromConfig(cfg)
		require.NoError(t, err)
		assert.Same(t, cfg, cm.GetConfig())
	})

	t.Run("nil", func(t *testing.T) {
		_, err := NewConfigManagerFromConfig(nil)
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Game.TicketPrice = -1
		_, err := NewConfigManagerFromConfig(cfg)
		assert.ErrorIs(t, err, ErrConfigInvalid)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_section", func(c *Config) { c.Log = nil }},
		{"retry_attempts_too_high", func(c *Config) { c.Redis.RetryAttempts = MaxRetryAttempts + 1 }},
		{"negative_retry_interval", func(c *Config) { c.Redis.RetryInterval = -time.Second }},
		{"failure_ratio_above_one", func(c *Config) { c.CircuitBreaker.FailureRatio = 1.5 }},
		{"redis_pool_size", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.PoolSize = 0
		}},
		{"redis_addr", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addr = ""
		}},
		{"bad_prizes", func(c *Config) { c.Game.Prizes.Fifth = c.Game.Prizes.Fourth }},
		{"bad_ticket_price", func(c *Config) { c.Game.TicketPrice = 0 }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigInvalid))
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
