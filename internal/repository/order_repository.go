package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"graceshopper/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrCartNotFound  = errors.New("no open cart for user")
)

// OrderRepository defines the interface for order data access. Every read
// returns orders with their line items attached.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order using parameterized queries
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, status, user_id, date_placed)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, order.ID, order.Status, order.UserID, order.DatePlaced)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(&order.ID, &order.Status, &order.UserID, &order.DatePlaced)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// attachItems loads the order_products rows for one order
func (r *orderRepository) attachItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, order_id, product_id, price, quantity
		FROM order_products
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	order.Items = []domain.OrderProduct{}
	for rows.Next() {
		var item domain.OrderProduct
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

// FindByID retrieves an order with its line items
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, status, user_id, date_placed FROM orders WHERE id = $1`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.attachItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) listWhere(ctx context.Context, where string, args ...any) ([]*domain.Order, error) {
	query := `SELECT id, status, user_id, date_placed FROM orders ` + where + ` ORDER BY date_placed DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		if err := r.attachItems(ctx, order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// List retrieves every order with line items
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.listWhere(ctx, "")
}

// ListByUser retrieves the orders owned by a user
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return r.listWhere(ctx, "WHERE user_id = $1", userID)
}

// FindCartByUser retrieves the user's open order. The cart is not a distinct
// entity: it is the order still in status 'created'.
func (r *orderRepository) FindCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, status, user_id, date_placed
		FROM orders
		WHERE user_id = $1 AND status = $2
		ORDER BY date_placed DESC
		LIMIT 1
	`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, userID, domain.StatusCreated))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}

	if err := r.attachItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus writes a new status, or ErrOrderNotFound if the id is absent.
// Transition legality is the service's concern; the repository only persists.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
