package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a shopper's rating of a product. Stars is bounded to [0, 5],
// enforced both here and by a CHECK constraint on the table.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Stars     int       `json:"stars" db:"stars"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
