package service

import (
	"context"
	"time"
)

type SaleCreatedEvent struct {
	SaleID     string    `json:"sale_id"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	TotalCents int64     `json:"total_cents"`
	LineCount  int       `json:"line_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnalyticsSink receives business events. Publishing is best-effort: a
// failed emission is logged and never fails the operation that produced it.
type AnalyticsSink interface {
	PublishSaleCreated(ctx context.Context, e SaleCreatedEvent) error
}
