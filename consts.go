package lotto

import "time"

const (
	// MinNumber is the smallest number that can be picked
	MinNumber = 1

	// MaxNumber is the largest number that can be picked
	MaxNumber = 45

	// NumberSetSize is the number of picks on one ticket line
	NumberSetSize = 6

	// DefaultTicketPrice is the price of a single ticket line
	DefaultTicketPrice = 1000

	// MaxTicketCount is the most ticket lines a single purchase can buy
	MaxTicketCount = 100_000
)

// Default prize amounts per rank
const (
	DefaultFirstPrize  int64 = 2_000_000_000
	DefaultSecondPrize int64 = 30_000_000
	DefaultThirdPrize  int64 = 1_500_000
	DefaultFourthPrize int64 = 50_000
	DefaultFifthPrize  int64 = 5_000
)

const (
	// DefaultRetryAttempts is the default number of retry attempts for ledger writes
	DefaultRetryAttempts = 3

	// DefaultRetryInterval is the default base interval between retry attempts
	DefaultRetryInterval = 100 * time.Millisecond

	// MaxRetryAttempts is the maximum number of retry attempts allowed
	MaxRetryAttempts = 10

	// MaxRetryDelay caps the exponential backoff between retries
	MaxRetryDelay = 5 * time.Second

	// RoundKeyPrefix is the prefix for Redis round summary keys
	RoundKeyPrefix = "lotto:round:"

	// StatsKey is the Redis hash holding aggregated ledger counters
	StatsKey = "lotto:stats"

	// DefaultRoundTTL is the default TTL for recorded round summaries
	DefaultRoundTTL = 24 * time.Hour

	// MaxSerializationSize is the maximum allowed size for a serialized RoundSummary (1MB)
	MaxSerializationSize = 1 * 1024 * 1024
)

const (
	// DefaultCircuitBreakerName is the default name for Circuit Breaker
	DefaultCircuitBreakerName = "lotto-ledger"

	// DefaultCircuitBreakerMaxRequests is the default max requests
	DefaultCircuitBreakerMaxRequests = 3

	// DefaultCircuitBreakerInterval is the default interval
	DefaultCircuitBreakerInterval = 60 * time.Second

	// DefaultCircuitBreakerTimeout is the default timeout
	DefaultCircuitBreakerTimeout = 30 * time.Second

	// DefaultCircuitBreakerFailureRatio is the default failure ratio
	DefaultCircuitBreakerFailureRatio = 0.6

	// DefaultCircuitBreakerMinRequests is the default min requests
	DefaultCircuitBreakerMinRequests = 3

	// DefaultCircuitBreakerOnStateChange is the default on state change
	DefaultCircuitBreakerOnStateChange = true
)

const (
	DefaultRedisEnabled      = false
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPassword     = ""
	DefaultRedisDB           = 0
	DefaultRedisPoolSize     = 10
	DefaultRedisMinIdleConns = 2
	DefaultRedisMaxRetries   = 3
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisPoolTimeout  = 4 * time.Second
)

const (
	DefaultLogLevel       = "info"
	DefaultLogDevelopment = false
)
