package lotto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinningDraw_RankOf(t *testing.T) {
	draw, err := NewWinningDrawFromInput([]int{1, 2, 3, 4, 5, 6}, 7)
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate []int
		want      Rank
	}{
		{"six_matches", []int{1, 2, 3, 4, 5, 6}, RankFirst},
		{"five_plus_bonus", []int{1, 2, 3, 4, 5, 7}, RankSecond},
		{"five_matches", []int{1, 2, 3, 4, 5, 8}, RankThird},
		{"four_matches", []int{1, 2, 3, 4, 8, 9}, RankFourth},
		{"three_matches", []int{1, 2, 3, 8, 9, 10}, RankFifth},
		{"three_matches_with_bonus", []int{1, 2, 3, 7, 8, 9}, RankFifth},
		{"three_matches_unordered", []int{9, 8, 7, 6, 5, 4}, RankFifth},
		{"two_matches_with_bonus", []int{1, 2, 7, 8, 9, 10}, RankNone},
		{"no_matches", []int{40, 41, 42, 43, 44, 45}, RankNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, draw.RankOf(mustNumberSet(t, tt.candidate...)))
		})
	}
}

func TestNewWinningDrawFromInput(t *testing.T) {
	tests := []struct {
		name    string
		values  []int
		bonus   int
		wantErr error
	}{
		{"valid", []int{1, 2, 3, 4, 5, 6}, 45, nil},
		{"bonus_in_numbers", []int{1, 2, 3, 4, 5, 6}, 6, ErrBonusDuplicate},
		{"bonus_out_of_range", []int{1, 2, 3, 4, 5, 6}, 46, ErrOutOfRange},
		{"numbers_wrong_size", []int{1, 2, 3}, 7, ErrWrongSize},
		{"numbers_duplicate", []int{1, 1, 3, 4, 5, 6}, 7, ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draw, err := NewWinningDrawFromInput(tt.values, tt.bonus)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, draw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bonus, draw.Bonus().Int())
			assert.Equal(t, tt.values, draw.Numbers().Ints())
		})
	}
}

func TestRandomWinningDraw(t *testing.T) {
	gen := NewSeededRandomGenerator(7)

	for range 200 {
		draw := RandomWinningDraw(gen)
		require.False(t, draw.Numbers().Contains(draw.Bonus()), "bonus must not be a winning number")
		require.GreaterOrEqual(t, draw.Bonus().Int(), MinNumber)
		require.LessOrEqual(t, draw.Bonus().Int(), MaxNumber)
	}
}
