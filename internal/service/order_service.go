package service

import (
	"errors"
	"time"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyOrder            = errors.New("no order items")
	ErrOrderNotFound         = errors.New("order not found")
	ErrTransactionIDRequired = errors.New("transaction id is required for bkash and nogod payments")
	ErrInvalidStatus         = errors.New("invalid order status")
)

type OrderService interface {
	CreateOrder(req *CreateOrderRequest, userID *uuid.UUID) (*model.Order, error)
	ListAll() ([]model.Order, error)
	UpdateStatus(orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

type CreateOrderRequest struct {
	OrderItems      []model.OrderItem     `json:"orderItems" validate:"dive"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   model.PaymentMethod   `json:"paymentMethod" validate:"required,oneof=bkash nogod cod"`
	TransactionID   string                `json:"transactionId"`
	ItemsPrice      decimal.Decimal       `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal       `json:"shippingPrice"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
}

// Notifier pushes admin panel events. Satisfied by *ws.Hub.
type Notifier interface {
	Notify(event string, data interface{})
}

type orderService struct {
	orderRepo repository.OrderRepository
	notifier  Notifier
}

func NewOrderService(orderRepo repository.OrderRepository, notifier Notifier) OrderService {
	return &orderService{orderRepo: orderRepo, notifier: notifier}
}

// CreateOrder persists a checkout as an immutable snapshot. Pricing is trusted
// as supplied by the client; totals are NOT recomputed against the live
// catalog. That trust boundary is deliberate and covered by tests.
func (s *orderService) CreateOrder(req *CreateOrderRequest, userID *uuid.UUID) (*model.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, ErrEmptyOrder
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	if req.PaymentMethod.RequiresTransactionID() && req.TransactionID == "" {
		return nil, ErrTransactionIDRequired
	}

	order := &model.Order{
		UserID:          userID,
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TransactionID:   req.TransactionID,
		ItemsPrice:      req.ItemsPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		Status:          model.StatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify("order_created", order)
	}

	return order, nil
}

func (s *orderService) ListAll() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

// UpdateStatus moves an order to the given status. Transitions between known
// statuses are unconstrained; an empty status keeps the current one. The
// delivery timestamp is written only the first time Delivered is reached.
func (s *orderService) UpdateStatus(orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if status != "" {
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		order.Status = status
	}

	if order.Status == model.StatusDelivered && order.DeliveredAt == nil {
		now := time.Now()
		order.DeliveredAt = &now
		order.IsDelivered = true
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify("order_status_update", order)
	}

	return order, nil
}
