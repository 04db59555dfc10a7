package checkout

import "github.com/shopspring/decimal"

// Totals derives the money breakdown from the session's current state.
// It is a pure computation with no caching: carts are human-scale, so a
// full recompute on every transition is cheaper than keeping
// incremental counters correct.
func (s *Session) Totals() Totals {
	gross := decimal.Zero
	for _, li := range s.Items {
		if li.IsRedeemed {
			continue
		}
		line := li.UnitPrice(s.OrderType).Mul(decimal.NewFromInt(int64(li.Quantity)))
		gross = gross.Add(line)
	}

	// The discount is rounded to pence here so every downstream figure
	// (remaining, final, change due) stays at currency precision.
	pct := ParseDiscount(s.DiscountInput)
	discount := gross.Mul(pct).Shift(-2).Round(2)
	if discount.GreaterThan(gross) {
		discount = gross
	}

	remaining := gross.Sub(discount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	applied := decimal.Zero
	if s.GiftCardActive && s.Customer != nil {
		applied = decimal.Min(s.Customer.GiftCardBalance, remaining)
		if applied.IsNegative() {
			applied = decimal.Zero
		}
	}

	final := remaining.Sub(applied)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Totals{
		GrossTotal:      gross,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		RemainingTotal:  remaining,
		GiftCardApplied: applied,
		FinalTotal:      final,
	}
}

// State bundles the session with everything derived from it. Handlers
// return this after every transition so the register screen always
// renders from settled state.
func (s *Session) State() SessionState {
	totals := s.Totals()
	return SessionState{
		Session:          s,
		Totals:           totals,
		Payment:          s.PaymentState(),
		AvailablePoints:  s.AvailablePoints(),
		MethodSelectable: totals.FinalTotal.IsPositive(),
	}
}
