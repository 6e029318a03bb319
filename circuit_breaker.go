package lotto

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
)

// CircuitBreakerRecorder 带熔断器的开奖账本
type CircuitBreakerRecorder struct {
	recorder RoundRecorder

	breaker *gobreaker.CircuitBreaker
	logger  Logger
	config  *CircuitBreakerConfig
}

// NewCircuitBreakerRecorder 创建带熔断器的开奖账本
func NewCircuitBreakerRecorder(recorder RoundRecorder, config *CircuitBreakerConfig, logger Logger) *CircuitBreakerRecorder {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		logger = NewSilentLogger()
	}

	if !config.Enabled {
		// 熔断器未启用, 透传
		return &CircuitBreakerRecorder{
			recorder: recorder,
			logger:   logger,
			config:   config,
		}
	}

	return &CircuitBreakerRecorder{
		recorder: recorder,
		breaker:  gobreaker.NewCircuitBreaker(breakerSettings(config, logger)),
		logger:   logger,
		config:   config,
	}
}

func breakerSettings(config *CircuitBreakerConfig, logger Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 请求数达到最小要求且失败率超过阈值时触发熔断
			return counts.Requests >= config.MinRequests &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if config.OnStateChange {
				logger.Info("Circuit breaker '%s' state changed from %s to %s", name, from, to)
			}
		},
	}
}

// Record 通过熔断器记录一局
func (c *CircuitBreakerRecorder) Record(ctx context.Context, summary *RoundSummary) error {
	if c.breaker == nil {
		return c.recorder.Record(ctx, summary)
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.recorder.Record(ctx, summary)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return newDetailedError(ErrCircuitBreakerOpen, "circuit breaker is open, round %s not recorded", summary.ID)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return newDetailedError(ErrCircuitBreakerOpen, "too many requests, circuit breaker is half-open")
	}
	return err
}

// State returns closed, half-open, open or disabled
func (c *CircuitBreakerRecorder) State() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

// Counts 获取熔断器统计信息
func (c *CircuitBreakerRecorder) Counts() gobreaker.Counts {
	if c.breaker == nil {
		return gobreaker.Counts{}
	}
	return c.breaker.Counts()
}

// Reset 重置熔断器 (gobreaker 没有 Reset 方法, 重新创建实例)
func (c *CircuitBreakerRecorder) Reset() {
	if c.breaker == nil {
		return
	}
	c.breaker = gobreaker.NewCircuitBreaker(breakerSettings(c.config, c.logger))
	c.logger.Info("Circuit breaker '%s' has been reset", c.config.Name)
}
