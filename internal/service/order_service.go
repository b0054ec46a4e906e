package service

import (
	"context"
	"time"

	"negociolisto-core/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Materializer converts a just-delivered order into a recorded sale.
type Materializer interface {
	MaterializeOrder(ctx context.Context, ord *models.Order) error
}

type orderService struct {
	orders   OrderStore
	products ProductStore
	sales    Materializer
	log      *zap.Logger
	now      func() time.Time
}

func NewOrderService(orders OrderStore, products ProductStore, sales Materializer, log *zap.Logger) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		sales:    sales,
		log:      log,
		now:      time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusApproved
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := s.now()
	ord := &models.Order{
		ID:             in.ID,
		CollectionID:   in.CollectionID,
		CustomerID:     in.CustomerID,
		Status:         status,
		Urgent:         in.Urgent,
		Observations:   in.Observations,
		DeliveryMethod: in.DeliveryMethod,
		PaymentMethod:  in.PaymentMethod,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}

	var subtotal int64
	seen := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		if it.Quantity == 0 {
			return nil, ErrQuantityInvalid
		}
		// one line per product; quantities are not merged silently
		if _, dup := seen[it.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[it.ProductID] = struct{}{}
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		subtotal += int64(it.Quantity) * p.PriceCents

		ord.Items = append(ord.Items, models.OrderItem{
			ID:            uuid.NewString(),
			OrderID:       ord.ID,
			ProductID:     it.ProductID,
			Position:      i,
			Quantity:      it.Quantity,
			Rating:        it.Rating,
			Notes:         it.Notes,
			Customization: it.Customization,
			CreatedAt:     now,
		})
	}
	ord.SubtotalCents = subtotal
	ord.RecomputeDerived()

	if err := s.orders.Create(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*models.Order, error) {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error) {
	return s.orders.ListByCollection(ctx, collectionID)
}

// Transition is the single guarded edge of the order state machine. The
// status write is the point of commitment; sale materialization runs after
// it and is never allowed to roll it back.
func (s *orderService) Transition(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !validStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	previous := ord.Status

	if err := s.orders.SetStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusDelivered && previous != models.OrderStatusDelivered {
		// Re-entering DELIVERED must not re-materialize; redundant taps and
		// retried requests land on the previous == DELIVERED branch above.
		ord.Status = newStatus
		// Insulated from caller teardown: once the status is committed the
		// materialization side effects run to completion or fail whole.
		mctx := context.WithoutCancel(ctx)
		if err := s.sales.MaterializeOrder(mctx, ord); err != nil {
			// The status stays DELIVERED with no sale recorded; the gap is
			// surfaced to the operator instead of rolled back.
			s.log.Error("sale materialization failed",
				zap.String("order_id", orderID),
				zap.Error(err))
		}
	}

	// Read-after-write: materialization may have touched denormalized state.
	updated, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}
