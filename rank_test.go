package lotto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		matches int
		bonus   bool
		want    Rank
	}{
		{6, false, RankFirst},
		{6, true, RankFirst},
		{5, true, RankSecond},
		{5, false, RankThird},
		{4, true, RankFourth},
		{4, false, RankFourth},
		{3, true, RankFifth},
		{3, false, RankFifth},
		{2, true, RankNone},
		{1, false, RankNone},
		{0, false, RankNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RankFor(tt.matches, tt.bonus), "matches=%d bonus=%t", tt.matches, tt.bonus)
	}
}

func TestRank_Attributes(t *testing.T) {
	tests := []struct {
		rank    Rank
		name    string
		matches int
		bonus   bool
		prize   int64
	}{
		{RankNone, "NONE", 0, false, 0},
		{RankFifth, "FIFTH", 3, false, 5_000},
		{RankFourth, "FOURTH", 4, false, 50_000},
		{RankThird, "THIRD", 5, false, 1_500_000},
		{RankSecond, "SECOND", 5, true, 30_000_000},
		{RankFirst, "FIRST", 6, false, 2_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.rank.String())
			assert.Equal(t, tt.matches, tt.rank.MatchCount())
			assert.Equal(t, tt.bonus, tt.rank.BonusRequired())
			assert.Equal(t, tt.prize, tt.rank.Prize())
			assert.Equal(t, tt.rank != RankNone, tt.rank.IsWinning())
		})
	}

	assert.Equal(t, "Rank(9)", Rank(9).String())
	assert.False(t, Rank(9).IsWinning())
	assert.Zero(t, Rank(-1).MatchCount())
}

func TestWinningRanks_Order(t *testing.T) {
	assert.Equal(t, []Rank{RankFifth, RankFourth, RankThird, RankSecond, RankFirst}, WinningRanks())
	assert.Len(t, Ranks(), rankCount)
}

func TestRank_TextEncoding(t *testing.T) {
	t.Run("json_map_key", func(t *testing.T) {
		data, err := json.Marshal(map[Rank]int{RankSecond: 1})
		require.NoError(t, err)
		assert.JSONEq(t, `{"SECOND":1}`, string(data))

		var decoded map[Rank]int
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, 1, decoded[RankSecond])
	})

	t.Run("unknown_name", func(t *testing.T) {
		_, err := ParseRank("SIXTH")
		assert.True(t, errors.Is(err, ErrInvalidParameters))
	})

	t.Run("invalid_rank", func(t *testing.T) {
		_, err := Rank(42).MarshalText()
		assert.Error(t, err)
	})
}

func TestPrizeTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prizes  [5]int64 // first..fifth
		wantErr bool
	}{
		{"default", [5]int64{2_000_000_000, 30_000_000, 1_500_000, 50_000, 5_000}, false},
		{"small_custom", [5]int64{5, 4, 3, 2, 1}, false},
		{"equal_tiers", [5]int64{100, 100, 50, 20, 10}, true},
		{"inverted", [5]int64{1, 2, 3, 4, 5}, true},
		{"zero_fifth", [5]int64{5, 4, 3, 2, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.prizes
			table, err := NewPrizeTable(p[0], p[1], p[2], p[3], p[4])
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPrizeTable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p[0], table.Prize(RankFirst))
			assert.Equal(t, p[4], table.Prize(RankFifth))
			assert.Zero(t, table.Prize(RankNone))
		})
	}

	t.Run("none_must_pay_zero", func(t *testing.T) {
		table := DefaultPrizeTable
		table[RankNone] = 1
		assert.Error(t, table.Validate())
	})

	require.NoError(t, DefaultPrizeTable.Validate())
}
