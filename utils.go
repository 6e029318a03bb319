package lotto

// ValidateCount validates a ticket count
func ValidateCount(count int) error {
	if count <= 0 {
		return newDetailedError(ErrInvalidParameters, "count must be greater than 0, got %d", count)
	}
	return nil
}

// ValidateTicketPrice validates the price of one ticket line
func ValidateTicketPrice(price int64) error {
	if price <= 0 {
		return newDetailedError(ErrInvalidTicketPrice, "got %d", price)
	}
	return nil
}
