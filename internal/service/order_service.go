package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
)

// Requester is the authenticated identity a handler passes down for
// ownership checks.
type Requester struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (r Requester) canAccess(ownerID uuid.UUID) bool {
	return r.IsAdmin || r.UserID == ownerID
}

// AddProductInput carries the fields accepted when adding a product to an
// order. Price, when nil, is snapshotted from the product's current catalog
// price at add time; either way the stored value never changes afterwards.
type AddProductInput struct {
	ProductID uuid.UUID
	Price     *decimal.Decimal
	Quantity  int
}

// UpdateOrderProductInput carries the new price and quantity for a line
// item. Both are required at the boundary.
type UpdateOrderProductInput struct {
	Price    decimal.Decimal
	Quantity int
}

// OrderService defines the interface for order business logic
type OrderService interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID, req Requester) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, req Requester) (*domain.Order, error)
	AddProduct(ctx context.Context, orderID uuid.UUID, input AddProductInput, req Requester) (*domain.OrderProduct, error)
	UpdateOrderProduct(ctx context.Context, id uuid.UUID, input UpdateOrderProductInput, req Requester) (*domain.OrderProduct, error)
	DeleteOrderProduct(ctx context.Context, id uuid.UUID, req Requester) (*domain.OrderProduct, error)
}

type orderService struct {
	orderRepo        repository.OrderRepository
	orderProductRepo repository.OrderProductRepository
	productRepo      repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderProductRepo repository.OrderProductRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		orderProductRepo: orderProductRepo,
		productRepo:      productRepo,
	}
}

// GetOrCreateCart returns the user's open order, creating one if none exists
func (s *orderService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	cart, err := s.orderRepo.FindCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	order := &domain.Order{
		ID:         uuid.New(),
		Status:     domain.StatusCreated,
		UserID:     userID,
		DatePlaced: time.Now(),
		Items:      []domain.OrderProduct{},
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Get retrieves an order for its owner or an admin
func (s *orderService) Get(ctx context.Context, orderID uuid.UUID, req Requester) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !req.canAccess(order.UserID) {
		return nil, ErrForbidden
	}
	return order, nil
}

// List retrieves every order; the admin guard gates the route
func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateStatus moves an order through the status machine: a created order
// may be cancelled or completed, and both of those states are terminal.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, req Requester) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !req.canAccess(order.UserID) {
		return nil, ErrForbidden
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	return order, nil
}

// AddProduct inserts a line item into an order the requester owns. The
// stored price is a snapshot: the caller's value when given, otherwise the
// product's catalog price at this moment. Later catalog changes never touch
// the row.
func (s *orderService) AddProduct(ctx context.Context, orderID uuid.UUID, input AddProductInput, req Requester) (*domain.OrderProduct, error) {
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !req.canAccess(order.UserID) {
		return nil, ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	price := product.Price
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		price = *input.Price
	}

	item := &domain.OrderProduct{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Price:     price,
		Quantity:  input.Quantity,
	}

	created, err := s.orderProductRepo.AddProductToOrder(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add product to order: %w", err)
	}

	return created, nil
}

// findOwnedOrderProduct resolves a line item and checks the requester may
// touch it, walking through the owning order.
func (s *orderService) findOwnedOrderProduct(ctx context.Context, id uuid.UUID, req Requester) (*domain.OrderProduct, error) {
	item, err := s.orderProductRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, item.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.canAccess(order.UserID) {
		return nil, ErrForbidden
	}

	return item, nil
}

// UpdateOrderProduct rewrites a line item's price and quantity by primary
// key. Existence is pre-checked so a missing id surfaces as not-found
// before any write is attempted.
func (s *orderService) UpdateOrderProduct(ctx context.Context, id uuid.UUID, input UpdateOrderProductInput, req Requester) (*domain.OrderProduct, error) {
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	if _, err := s.findOwnedOrderProduct(ctx, id, req); err != nil {
		return nil, err
	}

	return s.orderProductRepo.Update(ctx, id, repository.OrderProductUpdate{
		Price:    &input.Price,
		Quantity: &input.Quantity,
	})
}

// DeleteOrderProduct removes a line item and returns the deleted row
func (s *orderService) DeleteOrderProduct(ctx context.Context, id uuid.UUID, req Requester) (*domain.OrderProduct, error) {
	if _, err := s.findOwnedOrderProduct(ctx, id, req); err != nil {
		return nil, err
	}
	return s.orderProductRepo.Delete(ctx, id)
}
