// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopfront/storefront-api/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	// FindByIDs returns the products whose id is in ids, in no particular order.
	// Unknown ids are skipped silently.
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update writes every mutable column of product, including zero values.
	Update(ctx context.Context, product *models.Product) error
}

type OrderRepository interface {
	// Create inserts the order header only and assigns its ID and CreatedAt.
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	UpdateTotal(ctx context.Context, orderID uint, total decimal.Decimal) error
	List(ctx context.Context) ([]models.Order, error)
	// GetByID returns the order with its items.
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// Delete removes the order and, through the cascade, its items.
	Delete(ctx context.Context, id uint) error
}

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository
	// WithTransaction runs fn against a Store bound to a single transaction.
	// Nothing fn wrote is visible to other callers unless fn returns nil.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error
}
