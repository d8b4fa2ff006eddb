package service

import (
	"sort"
	"testing"
	"time"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepo) Create(order *model.Order) error {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	if o, ok := m.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	for _, o := range m.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (m *mockOrderRepo) Update(order *model.Order) error {
	m.orders[order.ID] = order
	return nil
}

func checkoutRequest(method model.PaymentMethod, transactionID string) *CreateOrderRequest {
	return &CreateOrderRequest{
		OrderItems: []model.OrderItem{{
			ProductID: uuid.New(),
			Name:      "Manchester Jersey Home 2024",
			Image:     "/images/jersey.jpg",
			Size:      "L",
			Quantity:  2,
			Price:     decimal.NewFromInt(500),
		}},
		ShippingAddress: model.ShippingAddress{
			FullName:    "Rahim Uddin",
			PhoneNumber: "01700000000",
			FullAddress: "House 1, Road 2, Dhaka",
		},
		PaymentMethod: method,
		TransactionID: transactionID,
		ItemsPrice:    decimal.NewFromInt(1000),
		ShippingPrice: decimal.NewFromInt(115),
		TotalPrice:    decimal.NewFromInt(1115),
	}
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	req := checkoutRequest(model.PaymentCOD, "")
	req.OrderItems = []model.OrderItem{}

	_, err := svc.CreateOrder(req, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Empty(t, repo.orders, "nothing should be persisted for an empty order")
}

func TestOrderService_CreateOrder_TransactionIDRequired(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo(), nil)

	_, err := svc.CreateOrder(checkoutRequest(model.PaymentBkash, ""), nil)
	assert.ErrorIs(t, err, ErrTransactionIDRequired)

	_, err = svc.CreateOrder(checkoutRequest(model.PaymentNogod, ""), nil)
	assert.ErrorIs(t, err, ErrTransactionIDRequired)

	_, err = svc.CreateOrder(checkoutRequest(model.PaymentBkash, "TRX123456"), nil)
	assert.NoError(t, err)
}

func TestOrderService_CreateOrder_CashOnDelivery(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo(), nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Nil(t, order.UserID, "guest checkout keeps no account reference")
}

func TestOrderService_CreateOrder_PricingTrustedAsSupplied(t *testing.T) {
	// Totals come from the client and are persisted verbatim. This is the
	// documented trust boundary, not an oversight.
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)

	stored, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.True(t, stored.ItemsPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stored.ShippingPrice.Equal(decimal.NewFromInt(115)))
	assert.True(t, stored.TotalPrice.Equal(decimal.NewFromInt(1115)))
	require.Len(t, stored.OrderItems, 1)
	assert.Equal(t, 2, stored.OrderItems[0].Quantity)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo(), nil)

	_, err := svc.UpdateStatus(uuid.New(), model.StatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.OrderStatus("Teleported"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderService_UpdateStatus_EmptyKeepsCurrent(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.StatusShipped)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, updated.Status)
}

func TestOrderService_UpdateStatus_AnyToAny(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, model.StatusCancelled)
	require.NoError(t, err)

	// Transitions are unconstrained by prior state.
	updated, err := svc.UpdateStatus(order.ID, model.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, updated.Status)
}

func TestOrderService_UpdateStatus_DeliveredAtSetOnce(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, nil)

	order, err := svc.CreateOrder(checkoutRequest(model.PaymentCOD, ""), nil)
	require.NoError(t, err)

	first, err := svc.UpdateStatus(order.ID, model.StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, first.DeliveredAt)
	assert.True(t, first.IsDelivered)

	deliveredAt := *first.DeliveredAt

	second, err := svc.UpdateStatus(order.ID, model.StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, second.DeliveredAt)
	assert.Equal(t, deliveredAt, *second.DeliveredAt, "deliveredAt must not change on repeat transitions")
}
