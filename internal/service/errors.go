package service

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrEmptyItems         = errors.New("empty items")
	ErrQuantityInvalid    = errors.New("quantity must be > 0")
	ErrDuplicateProduct   = errors.New("duplicate product in items")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvalidTemplate    = errors.New("unknown web template")

	// ErrOrderNotDelivered: only delivered orders materialize into sales.
	ErrOrderNotDelivered = errors.New("order is not delivered")

	// ErrTemplatePropagation wraps the fan-out failure; the triggering
	// individual write never happens when it is returned.
	ErrTemplatePropagation = errors.New("template propagation failed")
)

// ProductNotFoundError: an order references a product that no longer exists.
// Data-integrity violation, aborts the whole materialization.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError: a line item requests more than is on hand. The
// materialization attempt is aborted with no stock decremented and no sale
// written; stock may never arrive, so nothing retries automatically.
type InsufficientStockError struct {
	ProductID string
	Requested uint32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
