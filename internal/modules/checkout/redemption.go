package checkout

import "github.com/google/uuid"

// AvailablePoints returns the customer's loyalty budget minus the
// points consumed by every currently redeemed line item. Zero when no
// customer is attached.
func (s *Session) AvailablePoints() int {
	if s.Customer == nil {
		return 0
	}
	available := s.Customer.LoyaltyPoints
	for _, li := range s.Items {
		if li.IsRedeemed {
			available -= li.PointsToRedeem
		}
	}
	if available < 0 {
		available = 0
	}
	return available
}

// RedeemedPoints returns the total points consumed by currently
// redeemed line items.
func (s *Session) RedeemedPoints() int {
	total := 0
	for _, li := range s.Items {
		if li.IsRedeemed {
			total += li.PointsToRedeem
		}
	}
	return total
}

// RedeemItem marks a line item as paid with loyalty points. The whole
// line becomes free for a single point cost regardless of quantity,
// and its quantity and extras freeze until un-redeemed. Returns false
// without changing anything when a precondition fails; the register is
// expected to disable the control instead of surfacing an error.
func (s *Session) RedeemItem(instanceID uuid.UUID) bool {
	li := s.findItem(instanceID)
	if li == nil || li.IsRedeemed {
		return false
	}
	if !li.IsRedeemable || li.PointsToRedeem <= 0 {
		return false
	}
	if s.Customer == nil || li.PointsToRedeem > s.AvailablePoints() {
		return false
	}
	li.IsRedeemed = true
	s.touch()
	return true
}

// UnredeemItem returns a redeemed item's points to the budget and
// restores its price contribution and mutability. Returns false if the
// item is unknown or not redeemed.
func (s *Session) UnredeemItem(instanceID uuid.UUID) bool {
	li := s.findItem(instanceID)
	if li == nil || !li.IsRedeemed {
		return false
	}
	li.IsRedeemed = false
	s.touch()
	return true
}
