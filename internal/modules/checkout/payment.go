package checkout

// PaymentState evaluates the payment gate from the session's current
// state. Card sales are completable whenever a final total exists. Cash
// sales require parsing the tendered text and comparing it against the
// final total; a fully covered order (redemption plus gift card) is
// completable regardless of the cash field. Quick-amount buttons on the
// register only set CashTendered, so they flow through this same path.
func (s *Session) PaymentState() PaymentState {
	state := PaymentState{Method: s.PaymentMethod}
	final := s.Totals().FinalTotal

	if s.PaymentMethod == PayCard {
		state.Completable = true
		return state
	}

	if final.IsZero() {
		state.Completable = true
		return state
	}

	tendered := ParseAmount(s.CashTendered)
	if !tendered.Valid {
		state.TenderedError = "enter a valid cash amount"
		return state
	}
	if tendered.Value.LessThan(final) {
		state.TenderedError = "cash tendered is less than the amount due"
		return state
	}

	change := tendered.Value.Sub(final)
	state.ChangeDue = &change
	state.Completable = true
	return state
}
