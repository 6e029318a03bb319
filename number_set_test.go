package lotto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumberSet(t *testing.T) {
	tests := []struct {
		name    string
		values  []int
		want    []int
		wantErr error
	}{
		{"sorted_input", []int{1, 2, 3, 4, 5, 6}, []int{1, 2, 3, 4, 5, 6}, nil},
		{"unsorted_input", []int{45, 8, 21, 1, 33, 12}, []int{1, 8, 12, 21, 33, 45}, nil},
		{"too_few", []int{1, 2, 3, 4, 5}, nil, ErrWrongSize},
		{"too_many", []int{1, 2, 3, 4, 5, 6, 7}, nil, ErrWrongSize},
		{"empty", nil, nil, ErrWrongSize},
		{"out_of_range", []int{0, 2, 3, 4, 5, 6}, nil, ErrOutOfRange},
		{"above_max", []int{1, 2, 3, 4, 5, 46}, nil, ErrOutOfRange},
		{"duplicate", []int{1, 2, 3, 4, 5, 5}, nil, ErrDuplicate},
		// 数量检查先于范围检查
		{"wrong_size_and_out_of_range", []int{0, 99}, nil, ErrWrongSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewNumberSet(tt.values)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, NumberSet{}, set)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Ints())
		})
	}
}

func TestNumberSet_MatchCount(t *testing.T) {
	a := mustNumberSet(t, 1, 2, 3, 4, 5, 6)

	tests := []struct {
		name  string
		other NumberSet
		want  int
	}{
		{"identical", mustNumberSet(t, 6, 5, 4, 3, 2, 1), 6},
		{"three_shared", mustNumberSet(t, 1, 2, 3, 40, 41, 42), 3},
		{"disjoint", mustNumberSet(t, 7, 8, 9, 10, 11, 12), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.MatchCount(tt.other))
			assert.Equal(t, tt.want, tt.other.MatchCount(a))
		})
	}
}

func TestNumberSet_Contains(t *testing.T) {
	set := mustNumberSet(t, 1, 10, 20, 30, 40, 45)

	assert.True(t, set.Contains(mustNumber(t, 1)))
	assert.True(t, set.Contains(mustNumber(t, 45)))
	assert.False(t, set.Contains(mustNumber(t, 2)))
}

func TestNumberSet_String(t *testing.T) {
	set := mustNumberSet(t, 43, 8, 21, 42, 41, 23)
	assert.Equal(t, "[8, 21, 23, 41, 42, 43]", set.String())
}

func TestNumberSet_NumbersIsCopy(t *testing.T) {
	set := mustNumberSet(t, 1, 2, 3, 4, 5, 6)

	numbers := set.Numbers()
	numbers[0] = mustNumber(t, 45)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, set.Ints())
}

func TestRandomNumberSet(t *testing.T) {
	gen := NewSeededRandomGenerator(42)
	seen := make(map[int]bool)

	for range 500 {
		set := RandomNumberSet(gen)
		values := set.Ints()
		require.Len(t, values, NumberSetSize)

		for i, v := range values {
			require.GreaterOrEqual(t, v, MinNumber)
			require.LessOrEqual(t, v, MaxNumber)
			if i > 0 {
				require.Greater(t, v, values[i-1], "numbers must be distinct and ascending")
			}
			seen[v] = true
		}
	}

	// 500 组 x 6 个号码应覆盖全部 45 个号码
	assert.Len(t, seen, MaxNumber-MinNumber+1)
}

func mustNumberSet(t *testing.T, values ...int) NumberSet {
	t.Helper()

	set, err := NewNumberSet(values)
	require.NoError(t, err)
	return set
}
