package lotto

import (
	"context"
	"sync"
	"time"
)

// Report is the result of one settled round
type Report struct {
	Purchase    *PurchaseAmount
	Ticket      *Ticket
	Draw        *WinningDraw
	Outcome     *Outcome
	PrizeSum    int64
	ProfitRatio float64
	RoundID     string // empty when no recorder is set or recording failed
}

// Engine runs purchase, draw and settlement with the configured rules
type Engine struct {
	configManager *ConfigManager
	prizes        PrizeTable
	ticketPrice   int64
	seed          int64

	generator RandomGenerator
	recorder  RoundRecorder
	logger    Logger
	mu        sync.RWMutex // 保护配置, generator 和 recorder 的并发访问

	monitor *RoundMonitor
}

// NewEngine creates an engine with the default configuration
func NewEngine() *Engine {
	return NewEngineWithConfigAndLogger(NewDefaultConfigManager(), NewSilentLogger())
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(cm *ConfigManager) *Engine {
	return NewEngineWithConfigAndLogger(cm, NewSilentLogger())
}

// NewEngineWithLogger creates an engine with custom logger
func NewEngineWithLogger(logger Logger) *Engine {
	return NewEngineWithConfigAndLogger(NewDefaultConfigManager(), logger)
}

// NewEngineWithConfigAndLogger creates an engine with custom configuration and logger.
// A nil or unloaded config manager falls back to the defaults.
func NewEngineWithConfigAndLogger(cm *ConfigManager, logger Logger) *Engine {
	if cm == nil || cm.GetConfig() == nil {
		cm = NewDefaultConfigManager()
	}
	if logger == nil {
		logger = NewSilentLogger()
	}

	e := &Engine{
		configManager: cm,
		logger:        logger,
		monitor:       NewRoundMonitor(),
	}
	if err := e.apply(cm.GetConfig()); err != nil {
		// config manager 只保存验证过的配置, 这里只可能是手工构造的 Config
		logger.Error("Invalid engine config, using defaults: %v", err)
		_ = e.apply(DefaultConfig())
	}
	return e
}

// apply 根据配置更新规则, 调用方负责加锁
func (e *Engine) apply(config *Config) error {
	if config == nil || config.Game == nil {
		return ErrInvalidParameters
	}
	prizes, err := config.Game.PrizeTable()
	if err != nil {
		return err
	}
	if err := ValidateTicketPrice(config.Game.TicketPrice); err != nil {
		return err
	}

	if e.generator == nil || e.seed != config.Game.Seed {
		e.generator = NewRandomGenerator(config.Game.Seed)
		e.seed = config.Game.Seed
	}
	e.prizes = prizes
	e.ticketPrice = config.Game.TicketPrice
	return nil
}

// GetConfig returns the current configuration
func (e *Engine) GetConfig() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.configManager.GetConfig()
}

// UpdateConfig updates the game rules at runtime
func (e *Engine) UpdateConfig(newConfig *Config) error {
	e.logger.Debug("UpdateConfig called")

	if newConfig == nil {
		e.logger.Error("UpdateConfig failed: nil configuration")
		return ErrInvalidParameters
	}
	if err := newConfig.Validate(); err != nil {
		e.logger.Error("UpdateConfig validation failed: %v", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.apply(newConfig); err != nil {
		e.logger.Error("UpdateConfig failed: %v", err)
		return err
	}
	e.configManager.mu.Lock()
	e.configManager.config = newConfig
	e.configManager.mu.Unlock()

	e.logger.Info("Configuration updated successfully: TicketPrice=%d, Seed=%d, FirstPrize=%d",
		e.ticketPrice, e.seed, e.prizes.Prize(RankFirst))
	return nil
}

// SetLogger updates the logger at runtime
func (e *Engine) SetLogger(logger Logger) {
	if logger != nil && logger != e.logger {
		e.logger.Info("Logger updated")
		e.logger = logger
		e.logger.Info("New logger activated")
	}
}

// GetLogger returns the current logger
func (e *Engine) GetLogger() Logger { return e.logger }

// SetGenerator replaces the random source used for tickets and random draws
func (e *Engine) SetGenerator(gen RandomGenerator) {
	if gen == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.generator = gen
}

// SetRecorder sets the round ledger, nil disables recording
func (e *Engine) SetRecorder(recorder RoundRecorder) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recorder = recorder
}

// TicketPrice returns the configured ticket price
func (e *Engine) TicketPrice() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.ticketPrice
}

// Prizes returns the configured prize table
func (e *Engine) Prizes() PrizeTable {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.prizes
}

// Purchase validates amount against the configured ticket price
func (e *Engine) Purchase(amount int64) (*PurchaseAmount, error) {
	p, err := NewPurchaseAmountWithPrice(amount, e.TicketPrice())
	if err != nil {
		e.logger.Debug("Purchase rejected: amount=%d, err=%v", amount, err)
		return nil, err
	}
	return p, nil
}

// IssueTicket generates one random set per ticket the purchase buys
func (e *Engine) IssueTicket(p *PurchaseAmount) *Ticket {
	e.mu.RLock()
	gen := e.generator
	e.mu.RUnlock()

	ticket := NewTicket(p.TicketCount(), gen)
	e.logger.Debug("Issued ticket: count=%d", ticket.Len())
	return ticket
}

// Buy validates amount and issues the ticket
func (e *Engine) Buy(amount int64) (*PurchaseAmount, *Ticket, error) {
	p, err := e.Purchase(amount)
	if err != nil {
		return nil, nil, err
	}
	return p, e.IssueTicket(p), nil
}

// DrawFromInput builds the winning draw from entered numbers
func (e *Engine) DrawFromInput(values []int, bonus int) (*WinningDraw, error) {
	draw, err := NewWinningDrawFromInput(values, bonus)
	if err != nil {
		e.logger.Debug("Draw rejected: values=%v, bonus=%d, err=%v", values, bonus, err)
		return nil, err
	}
	return draw, nil
}

// DrawRandom draws six winning numbers and a bonus
func (e *Engine) DrawRandom() *WinningDraw {
	e.mu.RLock()
	gen := e.generator
	e.mu.RUnlock()

	return RandomWinningDraw(gen)
}

// Settle scores the ticket against the draw and records the round.
// Recording failures are logged and counted but never fail the round.
func (e *Engine) Settle(ctx context.Context, purchase *PurchaseAmount, ticket *Ticket, draw *WinningDraw) *Report {
	start := time.Now()

	e.mu.RLock()
	prizes := e.prizes
	recorder := e.recorder
	e.mu.RUnlock()

	outcome := ScoreWithPrizes(ticket, draw, prizes)
	prizeSum := outcome.PrizeSum()
	report := &Report{
		Purchase:    purchase,
		Ticket:      ticket,
		Draw:        draw,
		Outcome:     outcome,
		PrizeSum:    prizeSum,
		ProfitRatio: purchase.ProfitRatio(prizeSum),
	}

	e.monitor.RecordRound(purchase.Amount(), prizeSum, ticket.Len(), time.Since(start))
	e.logger.Debug("Settled round: amount=%d, tickets=%d, prize_sum=%d", purchase.Amount(), ticket.Len(), prizeSum)

	if recorder != nil {
		summary := NewRoundSummary(purchase, draw, outcome)
		if err := recorder.Record(ctx, summary); err != nil {
			e.monitor.RecordRecordFailure()
			e.logger.Error("Failed to record round %s: %v", summary.ID, err)
		} else {
			report.RoundID = summary.ID
		}
	}

	return report
}

// Metrics returns a snapshot of the round metrics
func (e *Engine) Metrics() RoundMetrics { return e.monitor.GetMetrics() }

// ResetMetrics resets the round metrics
func (e *Engine) ResetMetrics() { e.monitor.ResetMetrics() }

// EnableMonitoring enables round metrics
func (e *Engine) EnableMonitoring() { e.monitor.Enable() }

// DisableMonitoring disables round metrics
func (e *Engine) DisableMonitoring() { e.monitor.Disable() }
