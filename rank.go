package lotto

import "fmt"

// Rank is the prize tier a single number set earns against a draw.
// Higher values pay more.
type Rank int

const (
	RankNone Rank = iota
	RankFifth
	RankFourth
	RankThird
	RankSecond
	RankFirst

	rankCount = int(RankFirst) + 1
)

var rankNames = [rankCount]string{
	RankNone:   "NONE",
	RankFifth:  "FIFTH",
	RankFourth: "FOURTH",
	RankThird:  "THIRD",
	RankSecond: "SECOND",
	RankFirst:  "FIRST",
}

var rankMatchCounts = [rankCount]int{
	RankNone:   0,
	RankFifth:  3,
	RankFourth: 4,
	RankThird:  5,
	RankSecond: 5,
	RankFirst:  6,
}

// RankFor maps a match count and bonus hit to a rank.
// The bonus only separates SECOND from THIRD at five matches.
func RankFor(matchCount int, bonusMatched bool) Rank {
	switch {
	case matchCount == 6:
		return RankFirst
	case matchCount == 5 && bonusMatched:
		return RankSecond
	case matchCount == 5:
		return RankThird
	case matchCount == 4:
		return RankFourth
	case matchCount == 3:
		return RankFifth
	default:
		return RankNone
	}
}

// Ranks returns every rank, NONE included, from lowest to highest
func Ranks() []Rank {
	return []Rank{RankNone, RankFifth, RankFourth, RankThird, RankSecond, RankFirst}
}

// WinningRanks returns the paying ranks in display order, FIFTH to FIRST
func WinningRanks() []Rank {
	return []Rank{RankFifth, RankFourth, RankThird, RankSecond, RankFirst}
}

// Prize returns the default prize for the rank
func (r Rank) Prize() int64 { return DefaultPrizeTable.Prize(r) }

// MatchCount returns the number of matches the rank requires
func (r Rank) MatchCount() int {
	if !r.valid() {
		return 0
	}
	return rankMatchCounts[r]
}

// BonusRequired reports whether the rank needs the bonus number
func (r Rank) BonusRequired() bool { return r == RankSecond }

// IsWinning reports whether the rank pays anything
func (r Rank) IsWinning() bool { return r.valid() && r != RankNone }

func (r Rank) valid() bool { return r >= RankNone && r <= RankFirst }

func (r Rank) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// MarshalText encodes the rank by name so it can key JSON objects
func (r Rank) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, newDetailedError(ErrInvalidParameters, "unknown rank %d", int(r))
	}
	return []byte(rankNames[r]), nil
}

// UnmarshalText decodes a rank name
func (r *Rank) UnmarshalText(text []byte) error {
	rank, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = rank
	return nil
}

// ParseRank parses a rank name such as "SECOND"
func ParseRank(name string) (Rank, error) {
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return RankNone, newDetailedError(ErrInvalidParameters, "unknown rank %q", name)
}

// PrizeTable holds the prize amount for every rank
type PrizeTable [rankCount]int64

// DefaultPrizeTable is the reference prize table
var DefaultPrizeTable = PrizeTable{
	RankNone:   0,
	RankFifth:  DefaultFifthPrize,
	RankFourth: DefaultFourthPrize,
	RankThird:  DefaultThirdPrize,
	RankSecond: DefaultSecondPrize,
	RankFirst:  DefaultFirstPrize,
}

// NewPrizeTable builds and validates a prize table
func NewPrizeTable(first, second, third, fourth, fifth int64) (PrizeTable, error) {
	table := PrizeTable{
		RankNone:   0,
		RankFifth:  fifth,
		RankFourth: fourth,
		RankThird:  third,
		RankSecond: second,
		RankFirst:  first,
	}
	if err := table.Validate(); err != nil {
		return PrizeTable{}, err
	}
	return table, nil
}

// Prize returns the amount paid for r
func (t PrizeTable) Prize(r Rank) int64 {
	if !r.valid() {
		return 0
	}
	return t[r]
}

// Validate checks FIRST > SECOND > THIRD > FOURTH > FIFTH > NONE = 0
func (t PrizeTable) Validate() error {
	if t[RankNone] != 0 {
		return newDetailedError(ErrInvalidPrizeTable, "NONE must pay 0, got %d", t[RankNone])
	}
	for r := RankFifth; r <= RankFirst; r++ {
		if t[r] <= t[r-1] {
			return newDetailedError(ErrInvalidPrizeTable, "%s (%d) must pay more than %s (%d)", r, t[r], r-1, t[r-1])
		}
	}
	return nil
}
