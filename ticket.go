package lotto

import "slices"

// Ticket is one purchase's ordered list of number sets
type Ticket struct {
	sets []NumberSet
}

// NewTicket generates count independent random number sets.
// A count outside [1, MaxTicketCount] yields an empty ticket.
func NewTicket(count int, gen RandomGenerator) *Ticket {
	if err := ValidateCount(count); err != nil || count > MaxTicketCount {
		return &Ticket{}
	}

	sets := make([]NumberSet, 0, count)
	for range count {
		sets = append(sets, RandomNumberSet(gen))
	}
	return &Ticket{sets: sets}
}

// NewTicketFromSets builds a ticket from already validated sets
func NewTicketFromSets(sets []NumberSet) *Ticket {
	return &Ticket{sets: slices.Clone(sets)}
}

// Len returns the number of sets on the ticket
func (t *Ticket) Len() int { return len(t.sets) }

// At returns the i-th set
func (t *Ticket) At(i int) NumberSet { return t.sets[i] }

// Sets returns a copy of all sets in purchase order
func (t *Ticket) Sets() []NumberSet { return slices.Clone(t.sets) }
