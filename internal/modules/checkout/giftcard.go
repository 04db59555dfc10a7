package checkout

// ApplyGiftCard activates the customer's stored balance as a deduction
// against the post-discount total. The amount actually applied is
// derived in Totals as min(balance, remaining), so a cart edit after
// activation can never over-apply. No-op without a customer or with a
// zero balance; returns whether the state changed.
func (s *Session) ApplyGiftCard() bool {
	if s.GiftCardActive {
		return false
	}
	if s.Customer == nil || !s.Customer.GiftCardBalance.IsPositive() {
		return false
	}
	s.GiftCardActive = true
	s.touch()
	return true
}

// RemoveGiftCard deactivates the stored-balance deduction.
func (s *Session) RemoveGiftCard() {
	if !s.GiftCardActive {
		return
	}
	s.GiftCardActive = false
	s.touch()
}
