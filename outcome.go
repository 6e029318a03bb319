package lotto

// RankCount pairs a rank with how many sets earned it
type RankCount struct {
	Rank  Rank
	Count int
}

// Outcome is the tally of ranks produced by scoring a ticket
type Outcome struct {
	counts [rankCount]int
	prizes PrizeTable
}

// NewOutcome tallies ranks using the default prize table
func NewOutcome(ranks []Rank) *Outcome {
	return NewOutcomeWithPrizes(ranks, DefaultPrizeTable)
}

// NewOutcomeWithPrizes tallies ranks using the given prize table.
// Unknown rank values are ignored.
func NewOutcomeWithPrizes(ranks []Rank, prizes PrizeTable) *Outcome {
	o := &Outcome{prizes: prizes}
	for _, r := range ranks {
		if r.valid() {
			o.counts[r]++
		}
	}
	return o
}

// Score ranks every set on the ticket against the draw
func Score(ticket *Ticket, draw *WinningDraw) *Outcome {
	return ScoreWithPrizes(ticket, draw, DefaultPrizeTable)
}

// ScoreWithPrizes is Score with a custom prize table
func ScoreWithPrizes(ticket *Ticket, draw *WinningDraw, prizes PrizeTable) *Outcome {
	o := &Outcome{prizes: prizes}
	for _, set := range ticket.sets {
		o.counts[draw.RankOf(set)]++
	}
	return o
}

// Count returns how many sets earned r
func (o *Outcome) Count(r Rank) int {
	if !r.valid() {
		return 0
	}
	return o.counts[r]
}

// Total returns the number of scored sets, NONE included
func (o *Outcome) Total() int {
	total := 0
	for _, c := range o.counts {
		total += c
	}
	return total
}

// PrizeSum returns the total payout across all scored sets
func (o *Outcome) PrizeSum() int64 {
	var sum int64
	for r, c := range o.counts {
		sum += int64(c) * o.prizes[r]
	}
	return sum
}

// Prizes returns the prize table the outcome was scored with
func (o *Outcome) Prizes() PrizeTable { return o.prizes }

// WinningCounts returns the paying ranks in display order, FIFTH to FIRST
func (o *Outcome) WinningCounts() []RankCount {
	ranks := WinningRanks()
	counts := make([]RankCount, len(ranks))
	for i, r := range ranks {
		counts[i] = RankCount{Rank: r, Count: o.counts[r]}
	}
	return counts
}

// Counts returns the tally keyed by rank, NONE included
func (o *Outcome) Counts() map[Rank]int {
	m := make(map[Rank]int, rankCount)
	for r, c := range o.counts {
		m[Rank(r)] = c
	}
	return m
}
