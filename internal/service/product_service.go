package service

import (
	"context"
	"errors"
	"time"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrProductAlreadyExists reports that an idempotent insert hit an
	// existing name and created nothing.
	ErrProductAlreadyExists = errors.New("a product by that name already exists")
	ErrNegativePrice        = errors.New("price must not be negative")
)

// CreateProductInput carries the fields accepted when creating a product
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	InStock     bool
	Category    string
}

// ProductService defines the interface for catalog business logic
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create inserts a product. The repository's insert is idempotent on name;
// a nil result with no error means the name was taken and nothing changed.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		InStock:     input.InStock,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrProductAlreadyExists
	}

	return created, nil
}

// GetByID retrieves a product by ID
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List retrieves the catalog, optionally filtered by category
func (s *productService) List(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, category)
}

// Update applies a partial product update
func (s *productService) Update(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) (*domain.Product, error) {
	if update.Price != nil && update.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return s.productRepo.Update(ctx, id, update)
}

// Delete removes a product
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
