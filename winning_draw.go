package lotto

// WinningDraw is the official draw: six winning numbers plus a bonus number
// that is not among them
type WinningDraw struct {
	numbers NumberSet
	bonus   Number
}

// NewWinningDraw combines the winning numbers with the bonus number
func NewWinningDraw(numbers NumberSet, bonus Number) (*WinningDraw, error) {
	if numbers.Contains(bonus) {
		return nil, newDetailedError(ErrBonusDuplicate, "bonus %d is in %s", bonus.Int(), numbers)
	}
	return &WinningDraw{numbers: numbers, bonus: bonus}, nil
}

// NewWinningDrawFromInput validates raw winning numbers and bonus, then builds the draw
func NewWinningDrawFromInput(values []int, bonus int) (*WinningDraw, error) {
	numbers, err := NewNumberSet(values)
	if err != nil {
		return nil, err
	}
	b, err := NewNumber(bonus)
	if err != nil {
		return nil, err
	}
	return NewWinningDraw(numbers, b)
}

// RandomWinningDraw draws seven distinct numbers; the last one becomes the bonus
func RandomWinningDraw(gen RandomGenerator) *WinningDraw {
	values := sampleDistinct(gen, NumberSetSize+1)

	numbers := make([]Number, NumberSetSize)
	for i, v := range values[:NumberSetSize] {
		numbers[i] = Number{value: v}
	}
	return &WinningDraw{
		numbers: newNumberSet(numbers),
		bonus:   Number{value: values[NumberSetSize]},
	}
}

// Numbers returns the winning numbers
func (d *WinningDraw) Numbers() NumberSet { return d.numbers }

// Bonus returns the bonus number
func (d *WinningDraw) Bonus() Number { return d.bonus }

// RankOf scores a candidate set against the draw
func (d *WinningDraw) RankOf(candidate NumberSet) Rank {
	return RankFor(d.numbers.MatchCount(candidate), candidate.Contains(d.bonus))
}
