package lotto

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// Config 运行配置
type Config struct {
	// 游戏规则
	Game *GameConfig `mapstructure:"game"`

	// 日志配置
	Log *LogConfig `mapstructure:"log"`

	// Redis 配置 (开奖账本, 默认关闭)
	Redis *RedisConfig `mapstructure:"redis"`

	// 熔断器配置
	CircuitBreaker *CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Game == nil || c.Log == nil || c.Redis == nil || c.CircuitBreaker == nil {
		return newDetailedError(ErrConfigInvalid, "missing config section")
	}

	if err := ValidateTicketPrice(c.Game.TicketPrice); err != nil {
		return newDetailedError(ErrConfigInvalid, "game.ticket_price: %v", err)
	}
	if _, err := c.Game.PrizeTable(); err != nil {
		return newDetailedError(ErrConfigInvalid, "game.prizes: %v", err)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return newDetailedError(ErrConfigInvalid, "redis.addr is required when redis is enabled")
		}
		if c.Redis.PoolSize <= 0 {
			return newDetailedError(ErrConfigInvalid, "redis.pool_size must be positive, got %d", c.Redis.PoolSize)
		}
	}
	if c.Redis.RetryAttempts < 0 || c.Redis.RetryAttempts > MaxRetryAttempts {
		return newDetailedError(ErrConfigInvalid, "redis.retry_attempts must be between 0 and %d", MaxRetryAttempts)
	}
	if c.Redis.RetryInterval < 0 {
		return newDetailedError(ErrConfigInvalid, "redis.retry_interval cannot be negative")
	}

	if c.CircuitBreaker.FailureRatio < 0 || c.CircuitBreaker.FailureRatio > 1 {
		return newDetailedError(ErrConfigInvalid, "circuit_breaker.failure_ratio must be between 0 and 1")
	}

	return nil
}

// GameConfig 游戏规则配置
type GameConfig struct {
	TicketPrice int64       `mapstructure:"ticket_price"`
	Seed        int64       `mapstructure:"seed"` // 0: crypto/rand
	Prizes      PrizeConfig `mapstructure:"prizes"`
}

// PrizeConfig 各等级奖金
type PrizeConfig struct {
	First  int64 `mapstructure:"first"`
	Second int64 `mapstructure:"second"`
	Third  int64 `mapstructure:"third"`
	Fourth int64 `mapstructure:"fourth"`
	Fifth  int64 `mapstructure:"fifth"`
}

// PrizeTable converts the configured prizes into a validated PrizeTable
func (g *GameConfig) PrizeTable() (PrizeTable, error) {
	p := g.Prizes
	return NewPrizeTable(p.First, p.Second, p.Third, p.Fourth, p.Fifth)
}

// DefaultGameConfig 返回默认游戏规则
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TicketPrice: DefaultTicketPrice,
		Prizes: PrizeConfig{
			First:  DefaultFirstPrize,
			Second: DefaultSecondPrize,
			Third:  DefaultThirdPrize,
			Fourth: DefaultFourthPrize,
			Fifth:  DefaultFifthPrize,
		},
	}
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:       DefaultLogLevel,
		Development: DefaultLogDevelopment,
	}
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// 连接配置
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// 连接池配置
	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
	MaxRetries   int `mapstructure:"max_retries"`

	// 超时配置
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`

	// 账本配置
	RoundTTL      time.Duration `mapstructure:"round_ttl"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// DefaultRedisConfig 返回默认的Redis配置
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Enabled:       DefaultRedisEnabled,
		Addr:          DefaultRedisAddr,
		Password:      DefaultRedisPassword,
		DB:            DefaultRedisDB,
		PoolSize:      DefaultRedisPoolSize,
		MinIdleConns:  DefaultRedisMinIdleConns,
		MaxRetries:    DefaultRedisMaxRetries,
		DialTimeout:   DefaultRedisDialTimeout,
		ReadTimeout:   DefaultRedisReadTimeout,
		WriteTimeout:  DefaultRedisWriteTimeout,
		PoolTimeout:   DefaultRedisPoolTimeout,
		RoundTTL:      DefaultRoundTTL,
		RetryAttempts: DefaultRetryAttempts,
		RetryInterval: DefaultRetryInterval,
	}
}

// NewRedisClientFromConfig 从配置创建Redis客户端
func NewRedisClientFromConfig(config *RedisConfig) *redis.Client {
	if config == nil {
		config = DefaultRedisConfig()
	}

	return redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	})
}

// CircuitBreakerConfig 熔断器配置
type CircuitBreakerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Name          string        `mapstructure:"name"`
	MaxRequests   uint32        `mapstructure:"max_requests"`
	Interval      time.Duration `mapstructure:"interval"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FailureRatio  float64       `mapstructure:"failure_ratio"`
	MinRequests   uint32        `mapstructure:"min_requests"`
	OnStateChange bool          `mapstructure:"on_state_change"`
}

// DefaultCircuitBreakerConfig 返回默认熔断器配置
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Enabled:       true,
		Name:          DefaultCircuitBreakerName,
		MaxRequests:   DefaultCircuitBreakerMaxRequests,
		Interval:      DefaultCircuitBreakerInterval,
		Timeout:       DefaultCircuitBreakerTimeout,
		FailureRatio:  DefaultCircuitBreakerFailureRatio,
		MinRequests:   DefaultCircuitBreakerMinRequests,
		OnStateChange: DefaultCircuitBreakerOnStateChange,
	}
}

// DefaultConfig 返回完整的默认配置
func DefaultConfig() *Config {
	return &Config{
		Game:           DefaultGameConfig(),
		Log:            DefaultLogConfig(),
		Redis:          DefaultRedisConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
}

// ConfigManager 配置管理器
type ConfigManager struct {
	viper  *viper.Viper
	mu     sync.RWMutex
	config *Config
}

// NewConfigManager 创建配置管理器
func NewConfigManager() *ConfigManager {
	v := viper.New()

	// 设置配置文件名和路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lotto")
	v.AddConfigPath("$HOME/.lotto")

	return newConfigManager(v)
}

// NewConfigManagerWithFile 创建使用指定配置文件的配置管理器
func NewConfigManagerWithFile(path string) *ConfigManager {
	v := viper.New()
	v.SetConfigFile(path)

	return newConfigManager(v)
}

func newConfigManager(v *viper.Viper) *ConfigManager {
	// 设置环境变量前缀
	v.SetEnvPrefix("LOTTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &ConfigManager{viper: v}
}

// NewDefaultConfigManager 创建使用默认配置的配置管理器, 不读取文件
func NewDefaultConfigManager() *ConfigManager {
	cm := NewConfigManager()
	cm.setDefaults()
	cm.config = DefaultConfig()
	return cm
}

// NewConfigManagerFromConfig 从已有配置创建配置管理器
func NewConfigManagerFromConfig(config *Config) (*ConfigManager, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cm := NewConfigManager()
	cm.config = config
	return cm, nil
}

// LoadConfig 加载配置
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	cm.setDefaults()

	// 读取配置文件, 文件不存在时使用默认配置
	if err := cm.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := cm.decode()
	if err != nil {
		return nil, err
	}

	cm.mu.Lock()
	cm.config = config
	cm.mu.Unlock()

	return config, nil
}

func (cm *ConfigManager) decode() (*Config, error) {
	config := &Config{}
	if err := cm.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// setDefaults 设置默认配置值
func (cm *ConfigManager) setDefaults() {
	// 游戏规则默认配置
	cm.viper.SetDefault("game.ticket_price", DefaultTicketPrice)
	cm.viper.SetDefault("game.seed", 0)
	cm.viper.SetDefault("game.prizes.first", DefaultFirstPrize)
	cm.viper.SetDefault("game.prizes.second", DefaultSecondPrize)
	cm.viper.SetDefault("game.prizes.third", DefaultThirdPrize)
	cm.viper.SetDefault("game.prizes.fourth", DefaultFourthPrize)
	cm.viper.SetDefault("game.prizes.fifth", DefaultFifthPrize)

	// 日志默认配置
	cm.viper.SetDefault("log.level", DefaultLogLevel)
	cm.viper.SetDefault("log.development", DefaultLogDevelopment)

	// Redis 默认配置
	cm.viper.SetDefault("redis.enabled", DefaultRedisEnabled)
	cm.viper.SetDefault("redis.addr", DefaultRedisAddr)
	cm.viper.SetDefault("redis.password", DefaultRedisPassword)
	cm.viper.SetDefault("redis.db", DefaultRedisDB)
	cm.viper.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	cm.viper.SetDefault("redis.min_idle_conns", DefaultRedisMinIdleConns)
	cm.viper.SetDefault("redis.max_retries", DefaultRedisMaxRetries)
	cm.viper.SetDefault("redis.dial_timeout", "5s")
	cm.viper.SetDefault("redis.read_timeout", "3s")
	cm.viper.SetDefault("redis.write_timeout", "3s")
	cm.viper.SetDefault("redis.pool_timeout", "4s")
	cm.viper.SetDefault("redis.round_ttl", "24h")
	cm.viper.SetDefault("redis.retry_attempts", DefaultRetryAttempts)
	cm.viper.SetDefault("redis.retry_interval", "100ms")

	// 熔断器默认配置
	cm.viper.SetDefault("circuit_breaker.enabled", true)
	cm.viper.SetDefault("circuit_breaker.name", DefaultCircuitBreakerName)
	cm.viper.SetDefault("circuit_breaker.max_requests", DefaultCircuitBreakerMaxRequests)
	cm.viper.SetDefault("circuit_breaker.interval", "60s")
	cm.viper.SetDefault("circuit_breaker.timeout", "30s")
	cm.viper.SetDefault("circuit_breaker.failure_ratio", DefaultCircuitBreakerFailureRatio)
	cm.viper.SetDefault("circuit_breaker.min_requests", DefaultCircuitBreakerMinRequests)
	cm.viper.SetDefault("circuit_breaker.on_state_change", DefaultCircuitBreakerOnStateChange)
}

// WatchConfig 监听配置文件变化, 只有通过验证的新配置才会生效
func (cm *ConfigManager) WatchConfig(logger Logger, callback func(*Config)) {
	cm.viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("Config file changed: %s (%s)", e.Name, e.Op)

		config, err := cm.decode()
		if err != nil {
			logger.Error("Ignoring config change: %v", err)
			return
		}

		cm.mu.Lock()
		cm.config = config
		cm.mu.Unlock()

		if callback != nil {
			callback(config)
		}
	})
	cm.viper.WatchConfig()
}

// ConfigFileUsed 返回实际读取的配置文件路径
func (cm *ConfigManager) ConfigFileUsed() string { return cm.viper.ConfigFileUsed() }

// GetConfig 获取当前配置
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return cm.config
}

// ReloadConfig 重新加载配置
func (cm *ConfigManager) ReloadConfig() (*Config, error) { return cm.LoadConfig() }
