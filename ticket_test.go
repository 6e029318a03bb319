package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"one_set", 1, 1},
		{"fourteen_sets", 14, 14},
		{"zero", 0, 0},
		{"negative", -2, 0},
		{"max", MaxTicketCount, MaxTicketCount},
		{"above_max", MaxTicketCount + 1, 0},
		{"huge", 9_000_000_000_000_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := NewTicket(tt.count, NewSeededRandomGenerator(1))
			assert.Equal(t, tt.want, ticket.Len())
			assert.Len(t, ticket.Sets(), tt.want)
		})
	}
}

func TestNewTicket_SeedIsReproducible(t *testing.T) {
	a := NewTicket(5, NewSeededRandomGenerator(2024))
	b := NewTicket(5, NewSeededRandomGenerator(2024))

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Len() {
		assert.Equal(t, a.At(i), b.At(i))
	}
}

func TestNewTicketFromSets_Copies(t *testing.T) {
	sets := []NumberSet{
		mustNumberSet(t, 1, 2, 3, 4, 5, 6),
		mustNumberSet(t, 7, 8, 9, 10, 11, 12),
	}
	ticket := NewTicketFromSets(sets)

	sets[0] = mustNumberSet(t, 40, 41, 42, 43, 44, 45)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ticket.At(0).Ints())

	out := ticket.Sets()
	out[1] = sets[0]
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, ticket.At(1).Ints())
}
