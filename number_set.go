package lotto

import (
	"math/bits"
	"slices"
	"strings"
)

// NumberSet is an unordered set of exactly NumberSetSize distinct numbers.
// It is a value type; numbers are kept sorted for display.
type NumberSet struct {
	numbers [NumberSetSize]Number
	mask    uint64
}

// NewNumberSet builds a NumberSet from manually entered values
func NewNumberSet(values []int) (NumberSet, error) {
	if len(values) != NumberSetSize {
		return NumberSet{}, newDetailedError(ErrWrongSize, "got %d values", len(values))
	}

	numbers := make([]Number, 0, NumberSetSize)
	for _, v := range values {
		n, err := NewNumber(v)
		if err != nil {
			return NumberSet{}, err
		}
		numbers = append(numbers, n)
	}

	var mask uint64
	for _, n := range numbers {
		if mask&n.bit() != 0 {
			return NumberSet{}, newDetailedError(ErrDuplicate, "%d appears more than once", n.Int())
		}
		mask |= n.bit()
	}

	return newNumberSet(numbers), nil
}

// RandomNumberSet samples NumberSetSize distinct numbers uniformly from the full range
func RandomNumberSet(gen RandomGenerator) NumberSet {
	values := sampleDistinct(gen, NumberSetSize)

	numbers := make([]Number, len(values))
	for i, v := range values {
		numbers[i] = Number{value: v}
	}
	return newNumberSet(numbers)
}

// newNumberSet assumes numbers are valid and distinct
func newNumberSet(numbers []Number) NumberSet {
	slices.SortFunc(numbers, func(a, b Number) int { return a.value - b.value })

	var s NumberSet
	for i, n := range numbers {
		s.numbers[i] = n
		s.mask |= n.bit()
	}
	return s
}

// MatchCount returns how many numbers the two sets share
func (s NumberSet) MatchCount(other NumberSet) int {
	return bits.OnesCount64(s.mask & other.mask)
}

// Contains reports whether n is in the set
func (s NumberSet) Contains(n Number) bool {
	return s.mask&n.bit() != 0
}

// Numbers returns the numbers in ascending order
func (s NumberSet) Numbers() []Number {
	return slices.Clone(s.numbers[:])
}

// Ints returns the raw values in ascending order
func (s NumberSet) Ints() []int {
	values := make([]int, NumberSetSize)
	for i, n := range s.numbers {
		values[i] = n.value
	}
	return values
}

// String renders the set as "[1, 2, 3, 4, 5, 6]"
func (s NumberSet) String() string {
	parts := make([]string, NumberSetSize)
	for i, n := range s.numbers {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
