package service_test

import (
	"context"
	"errors"
	"testing"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/service"

	"go.uber.org/zap"
)

func productCatalog(stock map[string]int32) *MockProductStore {
	return &MockProductStore{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Product, error) {
			q, ok := stock[id]
			if !ok {
				return nil, nil
			}
			return &models.Product{ID: id, Name: "Producto " + id, PriceCents: 1000, StockQuantity: q}, nil
		},
	}
}

func deliveredOrder(id string, items map[string]uint32) *models.Order {
	ord := &models.Order{
		ID:            id,
		CollectionID:  "col1",
		Status:        models.OrderStatusDelivered,
		PaymentMethod: "efectivo",
	}
	pos := 0
	// deterministic fixture order
	for _, pid := range []string{"p1", "p2", "p3"} {
		if q, ok := items[pid]; ok {
			ord.Items = append(ord.Items, models.OrderItem{
				ID: pid + "-item", OrderID: id, ProductID: pid, Position: pos, Quantity: q,
			})
			pos++
		}
	}
	return ord
}

func TestMaterialize_HappyPath(t *testing.T) {
	// o1 with {p1: qty 2}, stock 5, unit price 1000 -> sale ORDER_o1, total 2000.
	var recorded *models.Sale
	sales := &MockSaleStore{
		RecordFunc: func(ctx context.Context, s *models.Sale) error {
			recorded = s
			return nil
		},
	}
	var event *service.SaleCreatedEvent
	analytics := &MockAnalytics{
		PublishSaleCreatedFunc: func(ctx context.Context, e service.SaleCreatedEvent) error {
			event = &e
			return nil
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 5}), analytics, zap.NewNop())

	err := svc.MaterializeOrder(context.Background(), deliveredOrder("o1", map[string]uint32{"p1": 2}))
	if err != nil {
		t.Fatalf("MaterializeOrder: %v", err)
	}
	if recorded == nil {
		t.Fatal("sale not recorded")
	}
	if recorded.ID != "ORDER_o1" {
		t.Fatalf("sale id expected ORDER_o1, got %s", recorded.ID)
	}
	if recorded.TotalCents != 2000 {
		t.Fatalf("total expected 2000, got %d", recorded.TotalCents)
	}
	if len(recorded.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(recorded.Items))
	}
	line := recorded.Items[0]
	if line.ProductID != "p1" || line.Quantity != 2 || line.UnitPriceCents != 1000 || line.ProductName == "" {
		t.Fatalf("line mismatch: %+v", line)
	}
	if recorded.Payment != models.PaymentCash {
		t.Fatalf("payment expected CASH, got %s", recorded.Payment)
	}
	if recorded.Status != models.SaleStatusActive {
		t.Fatalf("status expected ACTIVE, got %s", recorded.Status)
	}
	if event == nil || event.TotalCents != 2000 || event.LineCount != 1 || event.OrderID != "o1" {
		t.Fatalf("analytics event mismatch: %+v", event)
	}
}

func TestMaterialize_RejectsUndeliveredOrder(t *testing.T) {
	// The operator re-drive path hands arbitrary orders to the materializer;
	// anything short of DELIVERED must not become a sale.
	for _, status := range []models.OrderStatus{
		models.OrderStatusApproved,
		models.OrderStatusInProduction,
		models.OrderStatusReadyForDelivery,
		models.OrderStatusCancelled,
	} {
		var records int
		sales := &MockSaleStore{
			RecordFunc: func(ctx context.Context, s *models.Sale) error {
				records++
				return nil
			},
		}
		svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 5}), nil, zap.NewNop())

		ord := deliveredOrder("o1", map[string]uint32{"p1": 2})
		ord.Status = status
		err := svc.MaterializeOrder(context.Background(), ord)
		if !errors.Is(err, service.ErrOrderNotDelivered) {
			t.Fatalf("status %s: expected ErrOrderNotDelivered, got %v", status, err)
		}
		if records != 0 {
			t.Fatalf("status %s: sale recorded for undelivered order", status)
		}
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	existing := map[string]bool{}
	var records int
	sales := &MockSaleStore{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) {
			return existing[id], nil
		},
		RecordFunc: func(ctx context.Context, s *models.Sale) error {
			records++
			existing[s.ID] = true
			return nil
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 5}), nil, zap.NewNop())

	ord := deliveredOrder("o1", map[string]uint32{"p1": 2})
	if err := svc.MaterializeOrder(context.Background(), ord); err != nil {
		t.Fatalf("first materialization: %v", err)
	}
	if err := svc.MaterializeOrder(context.Background(), ord); err != nil {
		t.Fatalf("second materialization must be a silent no-op: %v", err)
	}
	if records != 1 {
		t.Fatalf("expected exactly one recorded sale, got %d", records)
	}
}

func TestMaterialize_InsufficientStock(t *testing.T) {
	// Stock 1 against requested 2: nothing is written, nothing decremented.
	var records int
	sales := &MockSaleStore{
		RecordFunc: func(ctx context.Context, s *models.Sale) error {
			records++
			return nil
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 1}), nil, zap.NewNop())

	err := svc.MaterializeOrder(context.Background(), deliveredOrder("o1", map[string]uint32{"p1": 2}))

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != "p1" || stockErr.Requested != 2 || stockErr.Available != 1 {
		t.Fatalf("error payload mismatch: %+v", stockErr)
	}
	if records != 0 {
		t.Fatalf("no sale may be recorded, got %d", records)
	}
}

func TestMaterialize_OneBadLineAbortsAll(t *testing.T) {
	// p1 has plenty, p2 does not: the whole materialization aborts.
	var records int
	sales := &MockSaleStore{
		RecordFunc: func(ctx context.Context, s *models.Sale) error {
			records++
			return nil
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 100, "p2": 1}), nil, zap.NewNop())

	err := svc.MaterializeOrder(context.Background(), deliveredOrder("o1", map[string]uint32{"p1": 2, "p2": 5}))

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != "p2" {
		t.Fatalf("failing product expected p2, got %s", stockErr.ProductID)
	}
	if records != 0 {
		t.Fatalf("partial sale recorded: %d", records)
	}
}

func TestMaterialize_ProductMissing(t *testing.T) {
	var records int
	sales := &MockSaleStore{
		RecordFunc: func(ctx context.Context, s *models.Sale) error {
			records++
			return nil
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{}), nil, zap.NewNop())

	err := svc.MaterializeOrder(context.Background(), deliveredOrder("o1", map[string]uint32{"p1": 1}))

	var notFound *service.ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if notFound.ProductID != "p1" {
		t.Fatalf("product expected p1, got %s", notFound.ProductID)
	}
	if records != 0 {
		t.Fatalf("no sale may be recorded, got %d", records)
	}
}

func TestMaterialize_AnalyticsFailureSwallowed(t *testing.T) {
	sales := &MockSaleStore{}
	analytics := &MockAnalytics{
		PublishSaleCreatedFunc: func(ctx context.Context, e service.SaleCreatedEvent) error {
			return errors.New("broker down")
		},
	}
	svc := service.NewSaleService(sales, productCatalog(map[string]int32{"p1": 5}), analytics, zap.NewNop())

	if err := svc.MaterializeOrder(context.Background(), deliveredOrder("o1", map[string]uint32{"p1": 2})); err != nil {
		t.Fatalf("analytics failure must not fail materialization: %v", err)
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		raw  string
		want models.PaymentMethod
	}{
		{"efectivo", models.PaymentCash},
		{"Efectivo", models.PaymentCash},
		{"EFECTIVO ", models.PaymentCash},
		{"tarjeta", models.PaymentCard},
		{"Débito", models.PaymentCard},
		{"transferencia", models.PaymentTransfer},
		{"Transferencia", models.PaymentTransfer},
		{"Nequi", models.PaymentTransfer},
		{"crédito", models.PaymentCredit},
		{"CRÉDITO", models.PaymentCredit},
		{"fiado", models.PaymentCredit},
		{"otro", models.PaymentOther},
		// lossy fallback, documented: unknown values become CASH
		{"bitcoin", models.PaymentCash},
		{"", models.PaymentCash},
	}
	for _, c := range cases {
		if got := service.NormalizePaymentMethod(c.raw); got != c.want {
			t.Fatalf("NormalizePaymentMethod(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}
