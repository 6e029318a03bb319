package lotto

import (
	"sync"
	"sync/atomic"
	"time"
)

// RoundMetrics 开奖统计
type RoundMetrics struct {
	// 开奖统计
	TotalRounds   int64 `json:"total_rounds"`   // 结算局数
	TicketsIssued int64 `json:"tickets_issued"` // 发出的号码组数
	AmountSpent   int64 `json:"amount_spent"`   // 购买总金额
	PrizePaid     int64 `json:"prize_paid"`     // 奖金总额

	// 账本统计
	RecordFailures int64 `json:"record_failures"` // 账本写入失败次数

	// 性能统计
	TotalSettleTime int64 `json:"total_settle_time"` // 总结算时间(纳秒)

	// 时间戳
	StartTime      int64 `json:"start_time"`       // 开始时间
	LastUpdateTime int64 `json:"last_update_time"` // 最后更新时间
}

// GetReturnRate 获取回报率 (奖金总额 / 购买总金额)
func (m *RoundMetrics) GetReturnRate() float64 {
	spent := atomic.LoadInt64(&m.AmountSpent)
	if spent == 0 {
		return 0.0
	}
	return float64(atomic.LoadInt64(&m.PrizePaid)) / float64(spent)
}

// GetAverageSettleTime 获取平均结算时间
func (m *RoundMetrics) GetAverageSettleTime() time.Duration {
	rounds := atomic.LoadInt64(&m.TotalRounds)
	if rounds == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&m.TotalSettleTime) / rounds)
}

// Reset 重置统计
func (m *RoundMetrics) Reset() {
	atomic.StoreInt64(&m.TotalRounds, 0)
	atomic.StoreInt64(&m.TicketsIssued, 0)
	atomic.StoreInt64(&m.AmountSpent, 0)
	atomic.StoreInt64(&m.PrizePaid, 0)
	atomic.StoreInt64(&m.RecordFailures, 0)
	atomic.StoreInt64(&m.TotalSettleTime, 0)
	atomic.StoreInt64(&m.StartTime, time.Now().UnixNano())
	atomic.StoreInt64(&m.LastUpdateTime, time.Now().UnixNano())
}

// ================================================================================

// RoundMonitor 开奖监控器
type RoundMonitor struct {
	metrics *RoundMetrics
	mu      sync.RWMutex
	enabled bool
}

// NewRoundMonitor 创建新的开奖监控器
func NewRoundMonitor() *RoundMonitor {
	rm := &RoundMonitor{
		metrics: &RoundMetrics{},
		enabled: true,
	}
	rm.metrics.Reset()
	return rm
}

// Enable 启用监控
func (rm *RoundMonitor) Enable() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.enabled = true
}

// Disable 禁用监控
func (rm *RoundMonitor) Disable() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.enabled = false
}

// IsEnabled 检查是否启用了监控
func (rm *RoundMonitor) IsEnabled() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	return rm.enabled
}

// RecordRound 记录一局结算
func (rm *RoundMonitor) RecordRound(spent, prize int64, tickets int, duration time.Duration) {
	if !rm.IsEnabled() {
		return
	}

	atomic.AddInt64(&rm.metrics.TotalRounds, 1)
	atomic.AddInt64(&rm.metrics.TicketsIssued, int64(tickets))
	atomic.AddInt64(&rm.metrics.AmountSpent, spent)
	atomic.AddInt64(&rm.metrics.PrizePaid, prize)
	atomic.AddInt64(&rm.metrics.TotalSettleTime, int64(duration))
	atomic.StoreInt64(&rm.metrics.LastUpdateTime, time.Now().UnixNano())
}

// RecordRecordFailure 记录账本写入失败
func (rm *RoundMonitor) RecordRecordFailure() {
	if !rm.IsEnabled() {
		return
	}

	atomic.AddInt64(&rm.metrics.RecordFailures, 1)
	atomic.StoreInt64(&rm.metrics.LastUpdateTime, time.Now().UnixNano())
}

// GetMetrics 获取统计的副本
func (rm *RoundMonitor) GetMetrics() RoundMetrics {
	return RoundMetrics{
		TotalRounds:     atomic.LoadInt64(&rm.metrics.TotalRounds),
		TicketsIssued:   atomic.LoadInt64(&rm.metrics.TicketsIssued),
		AmountSpent:     atomic.LoadInt64(&rm.metrics.AmountSpent),
		PrizePaid:       atomic.LoadInt64(&rm.metrics.PrizePaid),
		RecordFailures:  atomic.LoadInt64(&rm.metrics.RecordFailures),
		TotalSettleTime: atomic.LoadInt64(&rm.metrics.TotalSettleTime),
		StartTime:       atomic.LoadInt64(&rm.metrics.StartTime),
		LastUpdateTime:  atomic.LoadInt64(&rm.metrics.LastUpdateTime),
	}
}

// ResetMetrics 重置统计
func (rm *RoundMonitor) ResetMetrics() { rm.metrics.Reset() }
