package service

import (
	"context"

	"negociolisto-core/internal/models"
)

type CreateOrderItem struct {
	ProductID     string
	Quantity      uint32
	Rating        *int16
	Notes         *string
	Customization *string
}

type CreateOrderInput struct {
	ID             string // optional; assigned when empty
	CollectionID   string
	CustomerID     *string
	Status         models.OrderStatus // optional; submissions arrive pre-populated
	Items          []CreateOrderItem
	Urgent         bool
	Observations   string
	DeliveryMethod string
	PaymentMethod  string
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error)
	// Transition persists newStatus unconditionally (any edge is accepted;
	// the UI restricts buttons, the core does not assume it is the only
	// caller) and materializes a sale exactly once on entering DELIVERED.
	Transition(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error)
}

func validStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusApproved, models.OrderStatusInProduction,
		models.OrderStatusReadyForDelivery, models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return true
	}
	return false
}
