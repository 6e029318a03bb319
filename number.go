package lotto

import "strconv"

// Number is a single lotto number within [MinNumber, MaxNumber].
// The zero value is not a valid number; use NewNumber.
type Number struct {
	value int
}

// NewNumber validates n and wraps it as a Number
func NewNumber(n int) (Number, error) {
	if n < MinNumber || n > MaxNumber {
		return Number{}, newDetailedError(ErrOutOfRange, "%d is not between %d and %d", n, MinNumber, MaxNumber)
	}
	return Number{value: n}, nil
}

// Int returns the raw integer value
func (n Number) Int() int { return n.value }

func (n Number) String() string { return strconv.Itoa(n.value) }

func (n Number) bit() uint64 { return 1 << uint(n.value) }
