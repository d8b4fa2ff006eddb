package handler

import (
	"errors"

	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles checkout. Guests are allowed; when an authenticated account
// is present in context the order is linked to it.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	var userID *uuid.UUID
	if user, ok := c.Locals(middleware.UserKey).(*model.User); ok {
		userID = &user.ID
	}

	order, err := h.orders.CreateOrder(&req, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			return c.Status(400).JSON(fiber.Map{"message": "No order items"})
		}
		if errors.Is(err, service.ErrTransactionIDRequired) {
			return c.Status(400).JSON(fiber.Map{"message": "Transaction ID is required for this payment method"})
		}
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(201).JSON(order)
}

// ListAll returns every order, newest first, for the admin panel.
// GET /api/orders/all
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(orders)
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus moves an order through the status enumeration. Admin only.
// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Order not found"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Order not found"})
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid order status"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	return c.JSON(order)
}
