package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillpointhq/tillpoint-backend/internal/modules/catalog"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/customer"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/sale"
)

type fakeProducts struct{ products map[string]*catalog.Product }

func (f *fakeProducts) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return p, nil
}

type fakeCustomers struct{ customers map[string]*customer.Customer }

func (f *fakeCustomers) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer not found")
	}
	return c, nil
}

type fakeSales struct{ recorded []sale.RecordSaleRequest }

func (f *fakeSales) Record(ctx context.Context, req sale.RecordSaleRequest) (*sale.Sale, error) {
	f.recorded = append(f.recorded, req)
	return &sale.Sale{
		ID:         uuid.New(),
		SaleNumber: "S-TEST",
		FinalTotal: req.FinalTotal,
	}, nil
}

type fixture struct {
	service   Service
	sales     *fakeSales
	roastID   string
	oatID     string
	cakeID    string
	invalidID string
	adaID     string
}

func newFixture() *fixture {
	roast := &catalog.Product{ID: uuid.New(), Name: "Roast Dinner", PriceEatIn: dec("10.00"), PriceTakeAway: dec("10.00")}
	oat := &catalog.Product{ID: uuid.New(), Name: "Oat Milk", PriceEatIn: dec("0.50"), PriceTakeAway: dec("0.40"), IsExtra: true}
	cakeP := &catalog.Product{ID: uuid.New(), Name: "Carrot Cake", PriceEatIn: dec("4.00"), PriceTakeAway: dec("4.00"), IsRedeemable: true, PointsToRedeem: 100}
	ada := &customer.Customer{ID: uuid.New(), Name: "Ada", LoyaltyPoints: 150, GiftCardBalance: dec("5.00")}

	sales := &fakeSales{}
	service := NewService(
		NewSessionStore(),
		&fakeProducts{products: map[string]*catalog.Product{
			roast.ID.String(): roast,
			oat.ID.String():   oat,
			cakeP.ID.String(): cakeP,
		}},
		&fakeCustomers{customers: map[string]*customer.Customer{ada.ID.String(): ada}},
		sales,
	)
	return &fixture{
		service:   service,
		sales:     sales,
		roastID:   roast.ID.String(),
		oatID:     oat.ID.String(),
		cakeID:    cakeP.ID.String(),
		invalidID: uuid.New().String(),
		adaID:     ada.ID.String(),
	}
}

func (f *fixture) newSession(t *testing.T) string {
	t.Helper()
	state, err := f.service.CreateSession(context.Background(), CreateSessionRequest{})
	require.NoError(t, err)
	return state.Session.ID.String()
}

func TestServiceChargeScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	state, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.roastID})
	require.NoError(t, err)
	instanceID := state.Session.Items[0].InstanceID.String()

	_, err = f.service.ChangeQuantity(ctx, sid, instanceID, ChangeQuantityRequest{Quantity: 2})
	require.NoError(t, err)
	_, err = f.service.SetDiscount(ctx, sid, SetDiscountRequest{Discount: "10"})
	require.NoError(t, err)
	_, err = f.service.AttachCustomer(ctx, sid, AttachCustomerRequest{CustomerID: f.adaID})
	require.NoError(t, err)
	_, err = f.service.ApplyGiftCard(ctx, sid)
	require.NoError(t, err)
	state, err = f.service.SetCashTendered(ctx, sid, SetCashTenderedRequest{CashTendered: "20"})
	require.NoError(t, err)

	requireAmount(t, "13.00", state.Totals.FinalTotal)
	require.True(t, state.Payment.Completable)

	recorded, err := f.service.Charge(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, recorded)

	require.Len(t, f.sales.recorded, 1)
	req := f.sales.recorded[0]
	requireAmount(t, "20.00", req.GrossTotal)
	requireAmount(t, "2.00", req.DiscountAmount)
	requireAmount(t, "5.00", req.GiftCardApplied)
	requireAmount(t, "13.00", req.FinalTotal)
	requireAmount(t, "20", req.CashTendered)
	requireAmount(t, "7.00", req.ChangeGiven)
	assert.Equal(t, 0, req.RedeemedPoints)
	require.NotNil(t, req.CustomerID)
	assert.Equal(t, f.adaID, req.CustomerID.String())

	// The session is consumed by the charge.
	_, err = f.service.GetSession(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceChargeRedeemedLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	state, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.cakeID})
	require.NoError(t, err)
	instanceID := state.Session.Items[0].InstanceID.String()

	_, err = f.service.AttachCustomer(ctx, sid, AttachCustomerRequest{CustomerID: f.adaID})
	require.NoError(t, err)
	state, err = f.service.RedeemItem(ctx, sid, instanceID)
	require.NoError(t, err)
	require.True(t, state.Session.Items[0].IsRedeemed)
	requireAmount(t, "0", state.Totals.FinalTotal)

	_, err = f.service.Charge(ctx, sid)
	require.NoError(t, err)

	require.Len(t, f.sales.recorded, 1)
	req := f.sales.recorded[0]
	assert.Equal(t, 100, req.RedeemedPoints)
	require.Len(t, req.Items, 1)
	assert.True(t, req.Items[0].Redeemed)
	requireAmount(t, "0", req.Items[0].LineTotal)
}

func TestServiceChargeEmptyCart(t *testing.T) {
	f := newFixture()
	sid := f.newSession(t)

	_, err := f.service.Charge(context.Background(), sid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty cart")
}

func TestServiceChargeInsufficientCash(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	_, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.roastID})
	require.NoError(t, err)
	_, err = f.service.SetCashTendered(ctx, sid, SetCashTenderedRequest{CashTendered: "1"})
	require.NoError(t, err)

	_, err = f.service.Charge(ctx, sid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not completable")
	assert.Empty(t, f.sales.recorded)
}

func TestServiceAddExtraRequiresExtraProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	state, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.roastID})
	require.NoError(t, err)
	instanceID := state.Session.Items[0].InstanceID.String()

	_, err = f.service.AddExtra(ctx, sid, instanceID, AddExtraRequest{ProductID: f.roastID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an extra")

	state, err = f.service.AddExtra(ctx, sid, instanceID, AddExtraRequest{ProductID: f.oatID})
	require.NoError(t, err)
	assert.Len(t, state.Session.Items[0].Extras, 1)
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	f := newFixture()
	sid := f.newSession(t)

	_, err := f.service.AddItem(context.Background(), sid, AddItemRequest{ProductID: f.invalidID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServiceDetachCustomerResetsRedemptionState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	state, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.cakeID})
	require.NoError(t, err)
	instanceID := state.Session.Items[0].InstanceID.String()

	_, err = f.service.AttachCustomer(ctx, sid, AttachCustomerRequest{CustomerID: f.adaID})
	require.NoError(t, err)
	_, err = f.service.RedeemItem(ctx, sid, instanceID)
	require.NoError(t, err)
	_, err = f.service.ApplyGiftCard(ctx, sid)
	require.NoError(t, err)

	state, err = f.service.DetachCustomer(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, state.Session.Customer)
	assert.False(t, state.Session.Items[0].IsRedeemed)
	assert.False(t, state.Session.GiftCardActive)
	assert.Equal(t, 0, state.AvailablePoints)
}

func TestServiceDetachTabStartsFreshCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	_, err := f.service.AddItem(ctx, sid, AddItemRequest{ProductID: f.roastID})
	require.NoError(t, err)
	_, err = f.service.AttachTab(ctx, sid, AttachTabRequest{TabID: uuid.New().String()})
	require.NoError(t, err)

	state, err := f.service.DetachTab(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, state.Session.TabID)
	assert.Empty(t, state.Session.Items)
}

func TestServiceSetOrderTypeValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.newSession(t)

	_, err := f.service.SetOrderType(ctx, sid, SetOrderTypeRequest{OrderType: "DRIVE_THROUGH"})
	require.Error(t, err)

	state, err := f.service.SetOrderType(ctx, sid, SetOrderTypeRequest{OrderType: "TAKE_AWAY"})
	require.NoError(t, err)
	assert.Equal(t, OrderTakeAway, state.Session.OrderType)
}
