package lotto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoundSummary is the ledger record of one settled round
type RoundSummary struct {
	ID          string       `json:"id"`           // Round ID (uuid)
	Amount      int64        `json:"amount"`       // Money spent
	TicketPrice int64        `json:"ticket_price"` // Price of one ticket line
	TicketCount int          `json:"ticket_count"` // Number of ticket lines bought
	Winning     []int        `json:"winning"`      // Winning numbers, ascending
	Bonus       int          `json:"bonus"`        // Bonus number
	Ranks       map[Rank]int `json:"ranks"`        // Rank tally keyed by rank name, NONE included
	PrizeSum    int64        `json:"prize_sum"`    // Total payout
	ProfitRatio float64      `json:"profit_ratio"` // PrizeSum / Amount
	SettledAt   int64        `json:"settled_at"`   // Unix timestamp
}

// NewRoundSummary captures a settled round
func NewRoundSummary(purchase *PurchaseAmount, draw *WinningDraw, outcome *Outcome) *RoundSummary {
	prizeSum := outcome.PrizeSum()
	return &RoundSummary{
		ID:          uuid.NewString(),
		Amount:      purchase.Amount(),
		TicketPrice: purchase.TicketPrice(),
		TicketCount: purchase.TicketCount(),
		Winning:     draw.Numbers().Ints(),
		Bonus:       draw.Bonus().Int(),
		Ranks:       outcome.Counts(),
		PrizeSum:    prizeSum,
		ProfitRatio: purchase.ProfitRatio(prizeSum),
		SettledAt:   time.Now().Unix(),
	}
}

// Validate validates the round summary data
func (rs *RoundSummary) Validate() error {
	if rs.ID == "" {
		return newDetailedError(ErrRoundCorrupted, "empty round ID")
	}
	if _, err := uuid.Parse(rs.ID); err != nil {
		return newDetailedError(ErrRoundCorrupted, "round ID %q is not a uuid", rs.ID)
	}
	if rs.Amount < 0 || rs.TicketPrice <= 0 || rs.TicketCount < 0 || rs.PrizeSum < 0 {
		return newDetailedError(ErrRoundCorrupted, "negative amount, price, count or prize")
	}
	if int64(rs.TicketCount)*rs.TicketPrice != rs.Amount {
		return newDetailedError(ErrRoundCorrupted, "ticket count %d does not match amount %d", rs.TicketCount, rs.Amount)
	}

	scored := 0
	for _, c := range rs.Ranks {
		if c < 0 {
			return newDetailedError(ErrRoundCorrupted, "negative rank count")
		}
		scored += c
	}
	if scored != rs.TicketCount {
		return newDetailedError(ErrRoundCorrupted, "scored %d sets but bought %d", scored, rs.TicketCount)
	}
	return nil
}

// Outcome rebuilds the rank tally with the given prize table
func (rs *RoundSummary) Outcome(prizes PrizeTable) *Outcome {
	o := &Outcome{prizes: prizes}
	for r, c := range rs.Ranks {
		if r.valid() {
			o.counts[r] = c
		}
	}
	return o
}

// serializeRoundSummary serializes a RoundSummary to JSON bytes
func serializeRoundSummary(rs *RoundSummary) ([]byte, error) {
	if rs == nil {
		return nil, ErrInvalidParameters
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(rs)
	if err != nil {
		return nil, newDetailedError(ErrSerializationFailed, "round %s", rs.ID).WithCause(err)
	}
	if len(data) > MaxSerializationSize {
		return nil, newDetailedError(ErrSerializationFailed, "round %s is %d bytes, limit is %d", rs.ID, len(data), MaxSerializationSize)
	}
	return data, nil
}

// deserializeRoundSummary deserializes JSON bytes back to a RoundSummary
func deserializeRoundSummary(data []byte) (*RoundSummary, error) {
	if len(data) == 0 {
		return nil, ErrInvalidParameters
	}
	if len(data) > MaxSerializationSize {
		return nil, newDetailedError(ErrDeserializationFailed, "payload is %d bytes, limit is %d", len(data), MaxSerializationSize)
	}

	var rs RoundSummary
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, newDetailedError(ErrDeserializationFailed, "invalid JSON").WithCause(err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("loaded round failed validation: %w", err)
	}
	return &rs, nil
}

// roundKey returns the Redis key for a round ID
func roundKey(id string) string { return RoundKeyPrefix + id }
