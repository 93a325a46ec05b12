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
	ErrProductNotFound = errors.New("product not found")
)

// ProductUpdate lists every recognized field of a partial product update.
// Nil pointers keep the stored value.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	InStock     *bool
	Category    *string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, image_url, in_stock, category, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.InStock,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Create inserts a product. The insert is idempotent on name: a duplicate
// name produces no row and no error, and the returned product is nil.
// Callers detect the conflict by checking for a nil result.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (id, name, description, price, image_url, in_stock, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.InStock,
		product.Category,
		product.CreatedAt,
		product.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Name conflict: nothing inserted.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return created, nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves all products, optionally filtered by category
func (r *productRepository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update applies the supplied fields and returns the updated row, or
// ErrProductNotFound if the id does not exist.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error) {
	b := builder.Update("products").Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.Description != nil {
		b = b.Set("description", *update.Description)
	}
	if update.Price != nil {
		b = b.Set("price", *update.Price)
	}
	if update.ImageURL != nil {
		b = b.Set("image_url", *update.ImageURL)
	}
	if update.InStock != nil {
		b = b.Set("in_stock", *update.InStock)
	}
	if update.Category != nil {
		b = b.Set("category", *update.Category)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + productColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product update: %w", err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
