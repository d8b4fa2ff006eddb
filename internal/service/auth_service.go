package service

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("user already exists")
	ErrAdminExists        = errors.New("admin user already exists")
)

type AuthService interface {
	Login(username, password string) (*AuthResponse, error)
	Register(username, password, role string) (*AuthResponse, error)
	CreateFirstAdmin() (*model.User, error)
}

// AuthResponse is returned by login and register: the account summary plus a
// bearer token for subsequent requests.
type AuthResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Service

	// Bootstrap admin credentials, from config.
	adminUsername string
	adminPassword string
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Service, adminUsername, adminPassword string) AuthService {
	return &authService{
		userRepo:      userRepo,
		tokens:        tokens,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

func (s *authService) Login(username, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *authService) Register(username, password, role string) (*AuthResponse, error) {
	// Registration never hands out the admin role, and the role column only
	// knows the two enum values, so anything else collapses to a plain user.
	if role != model.RoleUser {
		role = model.RoleUser
	}

	if existing, _ := s.userRepo.FindByUsername(username); existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		Username: username,
		Role:     role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index catches the race the pre-check above cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.respond(user)
}

// CreateFirstAdmin creates the bootstrap admin account. It refuses to run once
// any admin exists, so it is safe to hit twice but useless to attackers after
// setup.
func (s *authService) CreateFirstAdmin() (*model.User, error) {
	exists, err := s.userRepo.AdminExists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}

	admin := &model.User{
		Username: s.adminUsername,
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword(s.adminPassword); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminExists
		}
		return nil, err
	}

	return admin, nil
}

func (s *authService) respond(user *model.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, nil
}
