package service

import (
	"context"
	"time"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type saleService struct {
	sales    SaleStore
	products ProductStore
	events   AnalyticsSink
	log      *zap.Logger
	now      func() time.Time
}

func NewSaleService(sales SaleStore, products ProductStore, events AnalyticsSink, log *zap.Logger) SaleService {
	return &saleService{
		sales:    sales,
		products: products,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// MaterializeOrder converts a delivered order into a recorded sale exactly
// once. Orders in any other status are rejected: the sale exists only past
// the DELIVERED transition. Every line item is validated against current
// stock before anything is written; a single failing line aborts the whole
// materialization with no partial sale and no stock decremented.
func (s *saleService) MaterializeOrder(ctx context.Context, ord *models.Order) error {
	if ord.Status != models.OrderStatusDelivered {
		return ErrOrderNotDelivered
	}

	saleID := models.SaleIDForOrder(ord.ID)

	exists, err := s.sales.Exists(ctx, saleID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	items := make([]models.SaleItem, 0, len(ord.Items))
	var total int64
	for i, it := range ord.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return &ProductNotFoundError{ProductID: it.ProductID}
		}
		if p.StockQuantity < int32(it.Quantity) {
			return &InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: p.StockQuantity,
			}
		}

		line := int64(it.Quantity) * p.PriceCents
		total += line
		items = append(items, models.SaleItem{
			ID:             uuid.NewString(),
			SaleID:         saleID,
			ProductID:      it.ProductID,
			ProductName:    p.Name,
			Position:       i,
			Quantity:       it.Quantity,
			UnitPriceCents: p.PriceCents,
		})
	}

	sale := &models.Sale{
		ID:         saleID,
		CustomerID: ord.CustomerID,
		TotalCents: total,
		Date:       s.now(),
		Payment:    NormalizePaymentMethod(ord.PaymentMethod),
		Note:       ord.Observations,
		Status:     models.SaleStatusActive,
		CreatedAt:  s.now(),
		Items:      items,
	}

	// The store re-verifies the idempotency witness and pairs the insert
	// with the conditional stock decrement in one transaction.
	if err := s.sales.Record(ctx, sale); err != nil {
		return err
	}

	if s.events != nil {
		ev := SaleCreatedEvent{
			SaleID:     sale.ID,
			OrderID:    ord.ID,
			TotalCents: sale.TotalCents,
			LineCount:  len(sale.Items),
			CreatedAt:  sale.CreatedAt,
		}
		if ord.CustomerID != nil {
			ev.CustomerID = *ord.CustomerID
		}
		if err := s.events.PublishSaleCreated(ctx, ev); err != nil {
			// best-effort
			s.log.Warn("analytics emission failed",
				zap.String("sale_id", sale.ID),
				zap.Error(err))
		}
	}

	return nil
}

func (s *saleService) Get(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, f repository.SaleListFilter) ([]models.Sale, int64, error) {
	return s.sales.List(ctx, f)
}
