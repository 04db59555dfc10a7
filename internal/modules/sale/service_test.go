package sale

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created    []*Sale
	failCreate bool
}

func (f *fakeRepo) Create(ctx context.Context, s *Sale) error {
	if f.failCreate {
		return fmt.Errorf("connection reset")
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	for _, s := range f.created {
		if s.ID.String() == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sale not found")
}

func (f *fakeRepo) List(ctx context.Context, day string) ([]*Sale, error) {
	return f.created, nil
}

type fakeLedger struct {
	pointsDebited  int
	balanceDebited decimal.Decimal
	failPoints     bool
	failGiftCard   bool
}

func (f *fakeLedger) DebitLoyalty(ctx context.Context, id string, points int) error {
	if f.failPoints {
		return fmt.Errorf("insufficient loyalty points")
	}
	f.pointsDebited += points
	return nil
}

func (f *fakeLedger) DebitGiftCard(ctx context.Context, id string, amount decimal.Decimal) error {
	if f.failGiftCard {
		return fmt.Errorf("insufficient gift card balance")
	}
	f.balanceDebited = f.balanceDebited.Add(amount)
	return nil
}

func (f *fakeLedger) CreditLoyalty(ctx context.Context, id string, points int) error {
	f.pointsDebited -= points
	return nil
}

func (f *fakeLedger) CreditGiftCard(ctx context.Context, id string, amount decimal.Decimal) error {
	f.balanceDebited = f.balanceDebited.Sub(amount)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validRequest() RecordSaleRequest {
	customerID := uuid.New()
	return RecordSaleRequest{
		SessionID:       uuid.New(),
		CustomerID:      &customerID,
		OrderType:       "EAT_IN",
		PaymentMethod:   "CASH",
		GrossTotal:      dec("20.00"),
		DiscountAmount:  dec("2.00"),
		GiftCardApplied: dec("5.00"),
		FinalTotal:      dec("13.00"),
		CashTendered:    dec("20.00"),
		ChangeGiven:     dec("7.00"),
		RedeemedPoints:  100,
		Items: []RecordSaleItem{{
			ProductID: uuid.New(),
			Name:      "Roast Dinner",
			Quantity:  2,
			UnitPrice: dec("10.00"),
			LineTotal: dec("20.00"),
		}},
	}
}

func TestRecordSale(t *testing.T) {
	repo := &fakeRepo{}
	ledger := &fakeLedger{}
	svc := NewService(repo, ledger, nil)

	recorded, err := svc.Record(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 100, ledger.pointsDebited)
	assert.True(t, ledger.balanceDebited.Equal(dec("5.00")))
	require.Len(t, repo.created, 1)
	assert.Equal(t, "GBP", recorded.Currency)
	assert.NotEmpty(t, recorded.SaleNumber)
	assert.True(t, recorded.FinalTotal.Equal(dec("13.00")))
	require.Len(t, recorded.Items, 1)
	assert.Equal(t, recorded.ID, recorded.Items[0].SaleID)
}

func TestRecordSaleValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeLedger{}, nil)

	t.Run("no items", func(t *testing.T) {
		req := validRequest()
		req.Items = nil
		_, err := svc.Record(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("bad payment method", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = "CHEQUE"
		_, err := svc.Record(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("redemption without customer", func(t *testing.T) {
		req := validRequest()
		req.CustomerID = nil
		_, err := svc.Record(context.Background(), req)
		require.Error(t, err)
	})
}

func TestRecordSaleAbortsWhenDebitFails(t *testing.T) {
	repo := &fakeRepo{}
	ledger := &fakeLedger{failPoints: true}
	svc := NewService(repo, ledger, nil)

	_, err := svc.Record(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loyalty points")
	assert.Empty(t, repo.created, "nothing may be persisted after a failed debit")
}

func TestRecordSaleRefundsPointsWhenGiftCardDebitFails(t *testing.T) {
	repo := &fakeRepo{}
	ledger := &fakeLedger{failGiftCard: true}
	svc := NewService(repo, ledger, nil)

	_, err := svc.Record(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gift card")
	assert.Equal(t, 0, ledger.pointsDebited, "the loyalty debit must be refunded")
	assert.Empty(t, repo.created)
}

func TestRecordSaleRefundsDebitsWhenPersistFails(t *testing.T) {
	repo := &fakeRepo{failCreate: true}
	ledger := &fakeLedger{}
	svc := NewService(repo, ledger, nil)

	_, err := svc.Record(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, 0, ledger.pointsDebited, "the loyalty debit must be refunded")
	assert.True(t, ledger.balanceDebited.IsZero(), "the gift card debit must be refunded")
	assert.Empty(t, repo.created)
}
