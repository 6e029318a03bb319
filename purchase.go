package lotto

// PurchaseAmount is the money spent on tickets, a multiple of the ticket price
type PurchaseAmount struct {
	amount      int64
	ticketPrice int64
}

// NewPurchaseAmount validates amount against DefaultTicketPrice
func NewPurchaseAmount(amount int64) (*PurchaseAmount, error) {
	return NewPurchaseAmountWithPrice(amount, DefaultTicketPrice)
}

// NewPurchaseAmountWithPrice validates amount against the given ticket price
func NewPurchaseAmountWithPrice(amount, ticketPrice int64) (*PurchaseAmount, error) {
	if err := ValidateTicketPrice(ticketPrice); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, newDetailedError(ErrInvalidAmount, "%d is negative", amount)
	}
	if amount%ticketPrice != 0 {
		return nil, newDetailedError(ErrInvalidAmount, "%d is not a multiple of %d", amount, ticketPrice)
	}
	if amount/ticketPrice > MaxTicketCount {
		return nil, newDetailedError(ErrInvalidAmount, "%d buys more than %d tickets", amount, MaxTicketCount)
	}
	return &PurchaseAmount{amount: amount, ticketPrice: ticketPrice}, nil
}

// Amount returns the money spent
func (p *PurchaseAmount) Amount() int64 { return p.amount }

// TicketPrice returns the price of one ticket line
func (p *PurchaseAmount) TicketPrice() int64 { return p.ticketPrice }

// TicketCount returns how many ticket lines the amount buys
func (p *PurchaseAmount) TicketCount() int { return int(p.amount / p.ticketPrice) }

// ProfitRatio returns prizeSum / amount, or 0 when nothing was spent
func (p *PurchaseAmount) ProfitRatio(prizeSum int64) float64 {
	if p.amount == 0 {
		return 0
	}
	return float64(prizeSum) / float64(p.amount)
}
