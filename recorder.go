package lotto

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// LedgerStats aggregates every round recorded in the ledger
type LedgerStats struct {
	Rounds   int64
	Spent    int64
	PrizeSum int64
	Ranks    map[Rank]int64
}

// ReturnRate returns PrizeSum / Spent, or 0 when nothing was spent
func (s *LedgerStats) ReturnRate() float64 {
	if s.Spent == 0 {
		return 0
	}
	return float64(s.PrizeSum) / float64(s.Spent)
}

const (
	statsFieldRounds = "rounds"
	statsFieldSpent  = "spent"
	statsFieldPrize  = "prize_sum"
)

type statsIncrement struct {
	name  string
	value int64
}

// RedisRecorder keeps round summaries and running totals in Redis
type RedisRecorder struct {
	redisClient *redis.Client
	logger      Logger
	roundTTL    time.Duration
	recovery    *ErrorRecovery
}

// NewRedisRecorder creates a recorder with default TTL and retry settings
func NewRedisRecorder(redisClient *redis.Client, logger Logger) *RedisRecorder {
	return NewRedisRecorderWithRetry(redisClient, logger, DefaultRoundTTL, DefaultRetryAttempts, DefaultRetryInterval)
}

// NewRedisRecorderFromConfig creates a recorder using the ledger settings of cfg
func NewRedisRecorderFromConfig(redisClient *redis.Client, cfg *RedisConfig, logger Logger) *RedisRecorder {
	if cfg == nil {
		cfg = DefaultRedisConfig()
	}
	return NewRedisRecorderWithRetry(redisClient, logger, cfg.RoundTTL, cfg.RetryAttempts, cfg.RetryInterval)
}

// NewRedisRecorderWithRetry creates a recorder with custom TTL and retry settings
func NewRedisRecorderWithRetry(
	redisClient *redis.Client, logger Logger, roundTTL time.Duration, retryAttempts int, retryDelay time.Duration,
) *RedisRecorder {
	if roundTTL <= 0 {
		roundTTL = DefaultRoundTTL
	}
	return &RedisRecorder{
		redisClient: redisClient,
		logger:      logger,
		roundTTL:    roundTTL,
		recovery:    NewErrorRecovery(NewErrorHandlerWithBackoff(logger, retryDelay), retryAttempts, logger),
	}
}

// Record stores the summary and folds it into the running totals.
// SET 和所有 HINCRBY 在同一个 MULTI/EXEC 事务中提交, 重试时整体重试.
func (r *RedisRecorder) Record(ctx context.Context, summary *RoundSummary) error {
	data, err := serializeRoundSummary(summary)
	if err != nil {
		r.logger.Error("Failed to serialize round: %v", err)
		return err
	}

	key := roundKey(summary.ID)
	increments := statsIncrements(summary)
	r.logger.Debug("Recording round: key=%s, size=%d bytes, ttl=%v", key, len(data), r.roundTTL)

	attempt := 0
	err = r.recovery.ExecuteWithRetry(ctx, fmt.Sprintf("record[%s]", key), func() error {
		attempt++
		if attempt > 1 {
			// 上次 EXEC 可能已提交但响应丢失, 轮次已存在时不再累加
			n, err := r.redisClient.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				r.logger.Debug("Round %s already committed, skipping retry", key)
				return nil
			}
		}

		_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(data), r.roundTTL)
			for _, inc := range increments {
				pipe.HIncrBy(ctx, StatsKey, inc.name, inc.value)
			}
			return nil
		})
		return err
	})
	if err != nil {
		return newDetailedError(ErrRoundNotRecorded, "save %s and update %s", key, StatsKey).WithCause(err)
	}

	r.logger.Debug("Recorded round %s: amount=%d, prize_sum=%d", summary.ID, summary.Amount, summary.PrizeSum)
	return nil
}

// statsIncrements 返回一局对 StatsKey 各字段的增量, 中奖等级按 FIFTH 到 FIRST 排列
func statsIncrements(summary *RoundSummary) []statsIncrement {
	increments := []statsIncrement{
		{statsFieldRounds, 1},
		{statsFieldSpent, summary.Amount},
		{statsFieldPrize, summary.PrizeSum},
	}
	for _, rank := range WinningRanks() {
		if c := summary.Ranks[rank]; c > 0 {
			increments = append(increments, statsIncrement{rank.String(), int64(c)})
		}
	}
	return increments
}

// Load returns a recorded round. 不存在或已过期时返回 ErrRoundNotFound
func (r *RedisRecorder) Load(ctx context.Context, id string) (*RoundSummary, error) {
	if id == "" {
		return nil, newDetailedError(ErrInvalidParameters, "empty round ID")
	}

	key := roundKey(id)
	var data []byte
	err := r.recovery.ExecuteWithRetry(ctx, fmt.Sprintf("load[%s]", key), func() error {
		var getErr error
		data, getErr = r.redisClient.Get(ctx, key).Bytes()
		if getErr == redis.Nil {
			data = nil
			return nil
		}
		return getErr
	})
	if err != nil {
		return nil, fmt.Errorf("Redis load operation failed for key=%s: %w", key, err)
	}
	if len(data) == 0 {
		r.logger.Debug("No recorded round found: key=%s", key)
		return nil, newDetailedError(ErrRoundNotFound, "key=%s", key)
	}

	return deserializeRoundSummary(data)
}

// Stats reads the running totals
func (r *RedisRecorder) Stats(ctx context.Context) (*LedgerStats, error) {
	var raw map[string]string
	err := r.recovery.ExecuteWithRetry(ctx, "stats", func() error {
		var getErr error
		raw, getErr = r.redisClient.HGetAll(ctx, StatsKey).Result()
		return getErr
	})
	if err != nil {
		return nil, fmt.Errorf("Redis hgetall operation failed for key=%s: %w", StatsKey, err)
	}

	stats := &LedgerStats{Ranks: make(map[Rank]int64)}
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, newDetailedError(ErrDeserializationFailed, "%s.%s=%q", StatsKey, field, value).WithCause(err)
		}

		switch field {
		case statsFieldRounds:
			stats.Rounds = n
		case statsFieldSpent:
			stats.Spent = n
		case statsFieldPrize:
			stats.PrizeSum = n
		default:
			rank, err := ParseRank(field)
			if err != nil {
				r.logger.Debug("Skipping unknown stats field %s", field)
				continue
			}
			stats.Ranks[rank] = n
		}
	}
	return stats, nil
}
