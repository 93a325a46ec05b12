package service

import (
	"context"
	"testing"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

// Create mirrors the table's insert contract: a duplicate name inserts
// nothing and reports (nil, nil).
func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for _, existing := range m.products {
		if existing.Name == product.Name {
			return nil, nil
		}
	}
	stored := *product
	m.products[product.ID] = &stored
	return &stored, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		if category == "" || product.Category == category {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.InStock != nil {
		product.InStock = *update.InStock
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	return product, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func TestCreateProductDuplicateName(t *testing.T) {
	productRepo := newMockProductRepository()
	service := NewProductService(productRepo)
	ctx := context.Background()

	input := CreateProductInput{
		Name:        "ScamWOW!",
		Description: "it is just a towel",
		Price:       decimal.NewFromInt(100),
		InStock:     true,
		Category:    "Household",
	}

	first, err := service.Create(ctx, input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.Name != input.Name {
		t.Errorf("expected name %q, got %q", input.Name, first.Name)
	}

	// A second insert under the same name touches nothing
	_, err = service.Create(ctx, input)
	if err != ErrProductAlreadyExists {
		t.Fatalf("expected ErrProductAlreadyExists, got %v", err)
	}
	if len(productRepo.products) != 1 {
		t.Errorf("expected 1 stored product, got %d", len(productRepo.products))
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	service := NewProductService(newMockProductRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, CreateProductInput{
		Name:  "Dog armor",
		Price: decimal.NewFromInt(-500),
	})
	if err != ErrNegativePrice {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}
}

func TestListProductsFiltersByCategory(t *testing.T) {
	productRepo := newMockProductRepository()
	service := NewProductService(productRepo)
	ctx := context.Background()

	for _, p := range []struct {
		name     string
		category string
	}{
		{"ScamWOW!", "Household"},
		{"Food Bags", "Household"},
		{"Dog armor", "Pets"},
	} {
		if _, err := service.Create(ctx, CreateProductInput{
			Name:     p.name,
			Price:    decimal.NewFromInt(100),
			Category: p.category,
		}); err != nil {
			t.Fatalf("create %q failed: %v", p.name, err)
		}
	}

	household, err := service.List(ctx, "Household")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(household) != 2 {
		t.Errorf("expected 2 household products, got %d", len(household))
	}

	all, err := service.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 products, got %d", len(all))
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	productRepo := newMockProductRepository()
	service := NewProductService(productRepo)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateProductInput{
		Name:        "Lunar Boots",
		Description: "jumping boots",
		Price:       decimal.NewFromInt(1000),
		InStock:     true,
		Category:    "Clothes",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := decimal.NewFromInt(900)
	updated, err := service.Update(ctx, created.ID, repository.ProductUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Omitted fields keep their stored value
	if !updated.Price.Equal(newPrice) {
		t.Errorf("expected price %s, got %s", newPrice, updated.Price)
	}
	if updated.Name != "Lunar Boots" || updated.Category != "Clothes" || !updated.InStock {
		t.Errorf("omitted fields changed: %+v", updated)
	}
}

func TestDeleteProductMissing(t *testing.T) {
	service := NewProductService(newMockProductRepository())
	if err := service.Delete(context.Background(), uuid.New()); err != repository.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
