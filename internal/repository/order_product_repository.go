package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"graceshopper/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderProductNotFound = errors.New("order product not found")
)

// OrderProductUpdate lists the recognized fields of a line item update.
// Nil pointers keep the stored value.
type OrderProductUpdate struct {
	Price    *decimal.Decimal
	Quantity *int
}

// OrderProductRepository defines the interface for order line item data access
type OrderProductRepository interface {
	AddProductToOrder(ctx context.Context, item *domain.OrderProduct) (*domain.OrderProduct, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderProduct, error)
	Update(ctx context.Context, id uuid.UUID, update OrderProductUpdate) (*domain.OrderProduct, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.OrderProduct, error)
}

type orderProductRepository struct {
	db *sql.DB
}

// NewOrderProductRepository creates a new instance of OrderProductRepository
func NewOrderProductRepository(db *sql.DB) OrderProductRepository {
	return &orderProductRepository{db: db}
}

const orderProductColumns = `id, order_id, product_id, price, quantity`

func scanOrderProduct(row interface{ Scan(...any) error }) (*domain.OrderProduct, error) {
	item := &domain.OrderProduct{}
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddProductToOrder inserts a line item carrying the caller-supplied price
// snapshot. The current product price is never read here; the snapshot stays
// fixed even when the catalog price later changes. Adding the same product to
// the same order again increments the existing row's quantity instead of
// inserting a second row.
func (r *orderProductRepository) AddProductToOrder(ctx context.Context, item *domain.OrderProduct) (*domain.OrderProduct, error) {
	query := `
		INSERT INTO order_products (id, order_id, product_id, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = order_products.quantity + $5
		RETURNING ` + orderProductColumns

	created, err := scanOrderProduct(r.db.QueryRowContext(
		ctx, query, item.ID, item.OrderID, item.ProductID, item.Price, item.Quantity,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to add product to order: %w", err)
	}

	return created, nil
}

// FindByID retrieves a line item by ID
func (r *orderProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderProduct, error) {
	query := `SELECT ` + orderProductColumns + ` FROM order_products WHERE id = $1`

	item, err := scanOrderProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderProductNotFound
		}
		return nil, fmt.Errorf("failed to find order product by ID: %w", err)
	}

	return item, nil
}

// Update applies the supplied fields by primary key and returns the updated
// row, or ErrOrderProductNotFound if the id does not exist. Callers that need
// a distinct not-found outcome should pre-check with FindByID.
func (r *orderProductRepository) Update(ctx context.Context, id uuid.UUID, update OrderProductUpdate) (*domain.OrderProduct, error) {
	b := builder.Update("order_products")

	if update.Price != nil {
		b = b.Set("price", *update.Price)
	}
	if update.Quantity != nil {
		b = b.Set("quantity", *update.Quantity)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + orderProductColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order product update: %w", err)
	}

	item, err := scanOrderProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderProductNotFound
		}
		return nil, fmt.Errorf("failed to update order product: %w", err)
	}

	return item, nil
}

// Delete removes a line item and returns the deleted row
func (r *orderProductRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.OrderProduct, error) {
	query := `DELETE FROM order_products WHERE id = $1 RETURNING ` + orderProductColumns

	item, err := scanOrderProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderProductNotFound
		}
		return nil, fmt.Errorf("failed to delete order product: %w", err)
	}

	return item, nil
}
