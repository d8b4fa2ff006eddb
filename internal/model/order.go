package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentBkash PaymentMethod = "bkash"
	PaymentNogod PaymentMethod = "nogod"
	PaymentCOD   PaymentMethod = "cod"
)

// RequiresTransactionID reports whether a payment reference must accompany the
// order. Cash on delivery has no upfront transaction.
func (m PaymentMethod) RequiresTransactionID() bool {
	return m == PaymentBkash || m == PaymentNogod
}

// ShippingAddress is embedded in the order row.
type ShippingAddress struct {
	FullName    string `gorm:"type:varchar(255);not null" json:"fullName" validate:"required"`
	PhoneNumber string `gorm:"type:varchar(30);not null" json:"phoneNumber" validate:"required"`
	FullAddress string `gorm:"type:text;not null" json:"fullAddress" validate:"required"`
}

// OrderItem is a snapshot of the catalog entry at order time. It deliberately
// does not join back to the live product, so historical orders survive later
// edits and deletions.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product" validate:"uuid_required"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Image     string          `gorm:"type:varchar(500)" json:"image"`
	Size      string          `gorm:"type:varchar(10);not null" json:"size" validate:"required"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

func (item *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}

// Order is created once at checkout. Line items and pricing are immutable
// afterwards; only status and the delivery/payment flags change, and only
// through the admin panel.
type Order struct {
	BaseModel
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user,omitempty"` // nil for guest checkout
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	TransactionID   string          `gorm:"type:varchar(100)" json:"transactionId,omitempty"`
	ItemsPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shippingPrice"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
}
