package service

import (
	"context"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/repository"
)

// Narrow store contracts the core depends on. The gorm repositories satisfy
// them structurally; tests inject function-field mocks.

// Orders are never removed here: the submission flow owns deletion, the
// core only reads and advances them.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) error
	ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error)
}

type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type SaleStore interface {
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f repository.SaleListFilter) ([]models.Sale, int64, error)
	// Record pairs the sale insert with the stock decrement atomically and
	// is a no-op when the sale id already exists.
	Record(ctx context.Context, s *models.Sale) error
}

type CollectionStore interface {
	Create(ctx context.Context, c *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Collection, error)
	Save(ctx context.Context, c *models.Collection) error
	UpdateTemplateByCustomer(ctx context.Context, customerID string, tmpl models.WebTemplate) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// OrderStreamSource is the live query backing the response-count cache.
type OrderStreamSource interface {
	StreamByCollection(ctx context.Context, collectionID string) (<-chan []models.Order, func())
}
