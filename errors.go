package lotto

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"
)

// ErrorCode 错误代码类型
type ErrorCode string

// 错误代码常量
const (
	// 系统级错误 (1000-1999)
	ErrCodeSystem          ErrorCode = "LOTTO_1000"
	ErrCodeRedisConnection ErrorCode = "LOTTO_1001"
	ErrCodeRedisTimeout    ErrorCode = "LOTTO_1002"
	ErrCodeConfigInvalid   ErrorCode = "LOTTO_1004"

	// 业务级错误 (2000-2999)
	ErrCodeInvalidParameters  ErrorCode = "LOTTO_2000"
	ErrCodeOutOfRange         ErrorCode = "LOTTO_2001"
	ErrCodeWrongSize          ErrorCode = "LOTTO_2002"
	ErrCodeDuplicate          ErrorCode = "LOTTO_2003"
	ErrCodeBonusDuplicate     ErrorCode = "LOTTO_2004"
	ErrCodeInvalidAmount      ErrorCode = "LOTTO_2005"
	ErrCodeInvalidPrizeTable  ErrorCode = "LOTTO_2006"
	ErrCodeInvalidTicketPrice ErrorCode = "LOTTO_2007"
	ErrCodeNotANumber         ErrorCode = "LOTTO_2008"

	// 限流相关错误 (5000-5999)
	ErrCodeCircuitBreakerOpen ErrorCode = "LOTTO_5002"

	// 账本相关错误 (6000-6999)
	ErrCodeRoundNotFound         ErrorCode = "LOTTO_6000"
	ErrCodeRoundNotRecorded      ErrorCode = "LOTTO_6001"
	ErrCodeRoundCorrupted        ErrorCode = "LOTTO_6003"
	ErrCodeSerializationFailed   ErrorCode = "LOTTO_6004"
	ErrCodeDeserializationFailed ErrorCode = "LOTTO_6005"
)

// ErrorSeverity 错误严重程度
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "critical"
	SeverityHigh     ErrorSeverity = "high"
	SeverityMedium   ErrorSeverity = "medium"
	SeverityLow      ErrorSeverity = "low"
	SeverityInfo     ErrorSeverity = "info"
)

// LotteryError 增强的错误类型
type LotteryError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Details    string         `json:"details,omitempty"`
	Severity   ErrorSeverity  `json:"severity"`
	Timestamp  time.Time      `json:"timestamp"`
	Operation  string         `json:"operation,omitempty"`
	StackTrace string         `json:"stack_trace,omitempty"`
	Cause      error          `json:"-"`
	Retryable  bool           `json:"retryable"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Error 实现 error 接口
func (e *LotteryError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap 接口
func (e *LotteryError) Unwrap() error { return e.Cause }

// Is 实现 errors.Is 接口, 相同错误代码视为同一错误
func (e *LotteryError) Is(target error) bool {
	if t, ok := target.(*LotteryError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithCause 添加原因错误
func (e *LotteryError) WithCause(cause error) *LotteryError {
	e.Cause = cause
	return e
}

// WithDetails 添加详细信息
func (e *LotteryError) WithDetails(details string) *LotteryError {
	e.Details = details
	return e
}

// WithOperation 添加操作信息
func (e *LotteryError) WithOperation(operation string) *LotteryError {
	e.Operation = operation
	return e
}

// WithMetadata 添加元数据
func (e *LotteryError) WithMetadata(key string, value any) *LotteryError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
	return e
}

// WithStackTrace 添加堆栈跟踪
func (e *LotteryError) WithStackTrace() *LotteryError {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	e.StackTrace = string(buf[:n])
	return e
}

// NewError 创建新的错误
func NewError(code ErrorCode, message string) *LotteryError {
	return &LotteryError{
		Code:      code,
		Message:   message,
		Severity:  SeverityMedium,
		Timestamp: time.Now(),
		Retryable: false,
	}
}

// NewRetryableError 创建可重试的错误
func NewRetryableError(code ErrorCode, message string) *LotteryError {
	return &LotteryError{
		Code:      code,
		Message:   message,
		Severity:  SeverityMedium,
		Timestamp: time.Now(),
		Retryable: true,
	}
}

// NewCriticalError 创建严重错误
func NewCriticalError(code ErrorCode, message string) *LotteryError {
	err := &LotteryError{
		Code:      code,
		Message:   message,
		Severity:  SeverityCritical,
		Timestamp: time.Now(),
		Retryable: false,
	}
	return err.WithStackTrace()
}

// 预定义的错误实例, 仅用于 errors.Is 比较; 需要附加信息时使用 newDetailedError
var (
	// 系统级错误
	ErrSystemError           = NewCriticalError(ErrCodeSystem, "system error occurred")
	ErrRedisConnectionFailed = NewRetryableError(ErrCodeRedisConnection, "Redis connection failed")
	ErrRedisTimeout          = NewRetryableError(ErrCodeRedisTimeout, "Redis operation timeout")
	ErrConfigInvalid         = NewCriticalError(ErrCodeConfigInvalid, "configuration is invalid")

	// 业务级错误
	ErrInvalidParameters  = NewError(ErrCodeInvalidParameters, "invalid parameters provided")
	ErrOutOfRange         = NewError(ErrCodeOutOfRange, "lotto number out of range")
	ErrWrongSize          = NewError(ErrCodeWrongSize, "lotto numbers must contain exactly 6 values")
	ErrDuplicate          = NewError(ErrCodeDuplicate, "lotto numbers must not repeat")
	ErrBonusDuplicate     = NewError(ErrCodeBonusDuplicate, "bonus number must not be one of the winning numbers")
	ErrInvalidAmount      = NewError(ErrCodeInvalidAmount, "purchase amount must be a non-negative multiple of the ticket price")
	ErrInvalidPrizeTable  = NewError(ErrCodeInvalidPrizeTable, "prize table must be strictly decreasing from first to fifth")
	ErrInvalidTicketPrice = NewError(ErrCodeInvalidTicketPrice, "ticket price must be positive")
	ErrNotANumber         = NewError(ErrCodeNotANumber, "input is not a number")

	// 限流相关错误
	ErrCircuitBreakerOpen = NewRetryableError(ErrCodeCircuitBreakerOpen, "circuit breaker is open")

	// 账本相关错误
	ErrRoundNotFound         = NewError(ErrCodeRoundNotFound, "round not found")
	ErrRoundNotRecorded      = NewRetryableError(ErrCodeRoundNotRecorded, "failed to record round")
	ErrRoundCorrupted        = NewError(ErrCodeRoundCorrupted, "round data is corrupted")
	ErrSerializationFailed   = NewError(ErrCodeSerializationFailed, "serialization failed")
	ErrDeserializationFailed = NewError(ErrCodeDeserializationFailed, "deserialization failed")
)

// newDetailedError copies a predefined error and attaches details to the copy
func newDetailedError(base *LotteryError, format string, args ...any) *LotteryError {
	return &LotteryError{
		Code:      base.Code,
		Message:   base.Message,
		Details:   fmt.Sprintf(format, args...),
		Severity:  base.Severity,
		Timestamp: time.Now(),
		Retryable: base.Retryable,
	}
}

// ErrorHandler 错误处理器接口
type ErrorHandler interface {
	HandleError(ctx context.Context, err error) error
	ShouldRetry(err error) bool
	GetRetryDelay(attempt int, err error) time.Duration
}

// DefaultErrorHandler 默认错误处理器
type DefaultErrorHandler struct {
	logger        Logger
	baseDelay     time.Duration
	maxDelay      time.Duration
	backoffFactor float64
}

// NewDefaultErrorHandler 创建默认错误处理器
func NewDefaultErrorHandler(logger Logger) *DefaultErrorHandler {
	return NewErrorHandlerWithBackoff(logger, DefaultRetryInterval)
}

// NewErrorHandlerWithBackoff 创建自定义基础延迟的错误处理器
func NewErrorHandlerWithBackoff(logger Logger, baseDelay time.Duration) *DefaultErrorHandler {
	if baseDelay <= 0 {
		baseDelay = DefaultRetryInterval
	}
	return &DefaultErrorHandler{
		logger:        logger,
		baseDelay:     baseDelay,
		maxDelay:      MaxRetryDelay,
		backoffFactor: 2.0,
	}
}

// HandleError 处理错误
func (h *DefaultErrorHandler) HandleError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// 转换为 LotteryError
	var lotteryErr *LotteryError
	if !errors.As(err, &lotteryErr) {
		lotteryErr = NewError(ErrCodeSystem, err.Error()).WithCause(err)
		lotteryErr.Retryable = IsRetryableError(err)
	}

	h.logError(lotteryErr)
	return lotteryErr
}

// ShouldRetry 判断是否应该重试
func (h *DefaultErrorHandler) ShouldRetry(err error) bool {
	var lotteryErr *LotteryError
	if errors.As(err, &lotteryErr) {
		return lotteryErr.Retryable
	}
	return IsRetryableError(err)
}

// GetRetryDelay 获取重试延迟
func (h *DefaultErrorHandler) GetRetryDelay(attempt int, err error) time.Duration {
	if attempt <= 0 {
		return h.baseDelay
	}

	// 指数退避算法
	delay := time.Duration(float64(h.baseDelay) * pow(h.backoffFactor, attempt-1))

	// 添加抖动 (±25%)
	jitter := time.Duration(float64(delay) * 0.25 * (2*rand.Float64() - 1))
	delay += jitter

	if delay > h.maxDelay {
		delay = h.maxDelay
	}
	return delay
}

// logError 记录错误日志
func (h *DefaultErrorHandler) logError(err *LotteryError) {
	switch err.Severity {
	case SeverityCritical:
		h.logger.Error("Critical error occurred: %s", err.Error())
	case SeverityHigh, SeverityMedium:
		h.logger.Error("Error occurred (severity=%s, retryable=%t): %s", err.Severity, err.Retryable, err.Error())
	default:
		h.logger.Info("Low severity error: %s", err.Error())
	}
}

// IsRetryableError 检查是否为可重试错误
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var lotteryErr *LotteryError
	if errors.As(err, &lotteryErr) {
		return lotteryErr.Retryable
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"network is unreachable",
		"temporary failure",
		"server closed",
		"broken pipe",
		"i/o timeout",
		"dial tcp",
		"read tcp",
		"write tcp",
		"no route to host",
		"redis: connection pool timeout",
		"context deadline exceeded",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for range exp {
		result *= base
	}
	return result
}

// ErrorRecovery 错误恢复策略
type ErrorRecovery struct {
	handler    ErrorHandler
	maxRetries int
	logger     Logger
}

// NewErrorRecovery 创建错误恢复策略
func NewErrorRecovery(handler ErrorHandler, maxRetries int, logger Logger) *ErrorRecovery {
	return &ErrorRecovery{
		handler:    handler,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// ExecuteWithRetry 执行带重试的操作
func (r *ErrorRecovery) ExecuteWithRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return NewError(ErrCodeSystem, "operation cancelled").WithOperation(operation).WithCause(ctx.Err())
		default:
		}

		attempts++
		err := fn()
		if err == nil {
			if attempt > 0 {
				r.logger.Info("%s succeeded after %d retries", operation, attempt)
			}
			return nil
		}

		lastErr = r.handler.HandleError(ctx, err)
		if !r.handler.ShouldRetry(lastErr) {
			r.logger.Debug("%s failed with non-retryable error: %v", operation, lastErr)
			break
		}

		if attempt < r.maxRetries {
			delay := r.handler.GetRetryDelay(attempt+1, lastErr)
			r.logger.Debug("Retrying %s in %v (attempt %d/%d)", operation, delay, attempt+1, r.maxRetries)

			select {
			case <-ctx.Done():
				return NewError(ErrCodeSystem, "operation cancelled during retry").WithOperation(operation).WithCause(ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return NewError(ErrCodeSystem, fmt.Sprintf("%s failed after %d attempts", operation, attempts)).
		WithOperation(operation).
		WithCause(lastErr)
}
