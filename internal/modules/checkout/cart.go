package checkout

import (
	"time"

	"github.com/google/uuid"
)

// Cart mutation primitives. All operations are no-ops on unknown
// instance ids: this is consumer-facing state driven by taps on a
// register screen, not a hard failure domain.

// AddItem appends a new quantity-1 line item for the given product and
// returns it. An invalid product reference is silently ignored.
func (s *Session) AddItem(p ProductDetails) *LineItem {
	if p.ProductID == uuid.Nil || p.Name == "" {
		return nil
	}
	li := &LineItem{
		InstanceID:     uuid.New(),
		ProductID:      p.ProductID,
		Name:           p.Name,
		Quantity:       1,
		PriceEatIn:     clampPrice(p.PriceEatIn),
		PriceTakeAway:  clampPrice(p.PriceTakeAway),
		IsRedeemable:   p.IsRedeemable,
		PointsToRedeem: p.PointsToRedeem,
	}
	s.Items = append(s.Items, li)
	s.touch()
	return li
}

// ChangeQuantity sets a line item's quantity. Dropping below 1 removes
// the item entirely. Redeemed items are frozen and ignore the call.
func (s *Session) ChangeQuantity(instanceID uuid.UUID, quantity int) {
	li := s.findItem(instanceID)
	if li == nil || li.IsRedeemed {
		return
	}
	if quantity < 1 {
		s.RemoveItem(instanceID)
		return
	}
	li.Quantity = quantity
	s.touch()
}

// RemoveItem deletes a line item and its extras unconditionally,
// including redeemed items (whose points return to the budget).
func (s *Session) RemoveItem(instanceID uuid.UUID) {
	for i, li := range s.Items {
		if li.InstanceID == instanceID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.touch()
			return
		}
	}
}

// AddExtra attaches a modifier to a line item and returns it. Rejected
// while the main item is redeemed.
func (s *Session) AddExtra(mainInstanceID uuid.UUID, p ProductDetails) *ExtraItem {
	li := s.findItem(mainInstanceID)
	if li == nil || li.IsRedeemed {
		return nil
	}
	if p.ProductID == uuid.Nil || p.Name == "" {
		return nil
	}
	li.Extras = append(li.Extras, ExtraItem{
		InstanceID:    uuid.New(),
		ProductID:     p.ProductID,
		Name:          p.Name,
		PriceEatIn:    clampPrice(p.PriceEatIn),
		PriceTakeAway: clampPrice(p.PriceTakeAway),
	})
	s.touch()
	return &li.Extras[len(li.Extras)-1]
}

// RemoveExtra detaches one modifier by id. Rejected while the main item
// is redeemed.
func (s *Session) RemoveExtra(mainInstanceID, extraInstanceID uuid.UUID) {
	li := s.findItem(mainInstanceID)
	if li == nil || li.IsRedeemed {
		return
	}
	for i := range li.Extras {
		if li.Extras[i].InstanceID == extraInstanceID {
			li.Extras = append(li.Extras[:i], li.Extras[i+1:]...)
			s.touch()
			return
		}
	}
}

// UpdateNote overwrites a line item's note. Always permitted, including
// on redeemed items.
func (s *Session) UpdateNote(instanceID uuid.UUID, note string) {
	li := s.findItem(instanceID)
	if li == nil {
		return
	}
	li.Notes = note
	s.touch()
}

// Clear empties the cart and resets discount, payment method, cash
// tendered, and gift-card application to defaults. The attached
// customer and order type survive.
func (s *Session) Clear() {
	s.Items = nil
	s.DiscountInput = ""
	s.PaymentMethod = PayCash
	s.CashTendered = ""
	s.GiftCardActive = false
	s.touch()
}

func (s *Session) findItem(instanceID uuid.UUID) *LineItem {
	for _, li := range s.Items {
		if li.InstanceID == instanceID {
			return li
		}
	}
	return nil
}

func (s *Session) touch() { s.UpdatedAt = time.Now() }
