package service

import (
	"errors"
	"strings"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("a product with this name already exists")
)

const slugMaxLen = 50

type CatalogService interface {
	List() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Create(req *CreateProductRequest) (*model.Product, error)
	Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description" validate:"required"`
	Image        string          `json:"image" validate:"required"`
	CountInStock int             `json:"countInStock" validate:"gte=0"`
	Sizes        []string        `json:"sizes" validate:"dive,oneof=S M L XL XXL"`
	Category     string          `json:"category"`
}

// UpdateProductRequest merges over the existing record. Nil pointers mean "no
// change"; an explicit zero CountInStock is a real update.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	CountInStock *int             `json:"countInStock"`
	Sizes        []string         `json:"sizes" validate:"dive,oneof=S M L XL XXL"`
	Category     *string          `json:"category"`
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) List() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) Create(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}
	if req.Price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	product := &model.Product{
		Name:         req.Name,
		Slug:         makeSlug(req.Name),
		Price:        req.Price,
		Description:  req.Description,
		Image:        req.Image,
		CountInStock: req.CountInStock,
		Sizes:        req.Sizes,
		Category:     req.Category,
	}
	if product.Category == "" {
		product.Category = "Jersey"
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	return product, nil
}

func (s *catalogService) Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errors.New(validator.Message(errs))
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// The slug keeps its creation-time value even when the name changes.
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.CountInStock != nil {
		product.CountInStock = *req.CountInStock
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	return product, nil
}

func (s *catalogService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

// makeSlug derives the URL-safe identifier from the display name: lowercase,
// spaces to hyphens, capped at 50 characters. The cap counts runes so a
// multi-byte name never ends on a split code point.
func makeSlug(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	if runes := []rune(slug); len(runes) > slugMaxLen {
		slug = string(runes[:slugMaxLen])
	}
	return slug
}
