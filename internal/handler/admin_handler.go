package handler

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	authService service.AuthService
	userRepo    userLister
	setupToken  string
}

// userLister is the slice of the user repository this handler needs.
type userLister interface {
	FindAll() ([]model.User, error)
}

func NewAdminHandler(authService service.AuthService, userRepo userLister, setupToken string) *AdminHandler {
	return &AdminHandler{authService: authService, userRepo: userRepo, setupToken: setupToken}
}

// CreateFirstAdmin is the one-time bootstrap route. It only works while no
// admin account exists, and when SETUP_TOKEN is configured it additionally
// requires a matching X-Setup-Token header.
// POST /api/admin/create-first-admin
func (h *AdminHandler) CreateFirstAdmin(c *fiber.Ctx) error {
	if h.setupToken != "" && c.Get("X-Setup-Token") != h.setupToken {
		return c.Status(401).JSON(fiber.Map{"message": "Invalid setup token"})
	}

	admin, err := h.authService.CreateFirstAdmin()
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			return c.Status(400).JSON(fiber.Map{"message": "Admin user already exists. Cannot create another via this open route."})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create admin user"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "First Admin User created successfully. Please use /api/auth/login to access.",
		"username": admin.Username,
	})
}

// ListUsers returns all accounts without password hashes. Admin only.
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch users"})
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return c.JSON(responses)
}
