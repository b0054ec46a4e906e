package service_test

import (
	"context"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/repository"
	"negociolisto-core/internal/service"
)

// Function-field mocks for the store ports.

type MockOrderStore struct {
	CreateFunc           func(ctx context.Context, o *models.Order) error
	GetByIDFunc          func(ctx context.Context, id string) (*models.Order, error)
	SetStatusFunc        func(ctx context.Context, id string, status models.OrderStatus) error
	ListByCollectionFunc func(ctx context.Context, collectionID string) ([]models.Order, error)
}

func (m *MockOrderStore) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderStore) ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error) {
	if m.ListByCollectionFunc != nil {
		return m.ListByCollectionFunc(ctx, collectionID)
	}
	return nil, nil
}

type MockProductStore struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Product, error)
}

func (m *MockProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockSaleStore struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Sale, error)
	ExistsFunc  func(ctx context.Context, id string) (bool, error)
	ListFunc    func(ctx context.Context, f repository.SaleListFilter) ([]models.Sale, int64, error)
	RecordFunc  func(ctx context.Context, s *models.Sale) error
}

func (m *MockSaleStore) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSaleStore) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockSaleStore) List(ctx context.Context, f repository.SaleListFilter) ([]models.Sale, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockSaleStore) Record(ctx context.Context, s *models.Sale) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, s)
	}
	return nil
}

type MockCollectionStore struct {
	CreateFunc                   func(ctx context.Context, c *models.Collection) error
	GetByIDFunc                  func(ctx context.Context, id string) (*models.Collection, error)
	ListByCustomerFunc           func(ctx context.Context, customerID string) ([]models.Collection, error)
	SaveFunc                     func(ctx context.Context, c *models.Collection) error
	UpdateTemplateByCustomerFunc func(ctx context.Context, customerID string, tmpl models.WebTemplate) (int64, error)
	DeleteFunc                   func(ctx context.Context, id string) (bool, error)
}

func (m *MockCollectionStore) Create(ctx context.Context, c *models.Collection) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCollectionStore) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCollectionStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Collection, error) {
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockCollectionStore) Save(ctx context.Context, c *models.Collection) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *MockCollectionStore) UpdateTemplateByCustomer(ctx context.Context, customerID string, tmpl models.WebTemplate) (int64, error) {
	if m.UpdateTemplateByCustomerFunc != nil {
		return m.UpdateTemplateByCustomerFunc(ctx, customerID, tmpl)
	}
	return 0, nil
}

func (m *MockCollectionStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

type MockMaterializer struct {
	MaterializeOrderFunc func(ctx context.Context, ord *models.Order) error
}

func (m *MockMaterializer) MaterializeOrder(ctx context.Context, ord *models.Order) error {
	if m.MaterializeOrderFunc != nil {
		return m.MaterializeOrderFunc(ctx, ord)
	}
	return nil
}

type MockAnalytics struct {
	PublishSaleCreatedFunc func(ctx context.Context, e service.SaleCreatedEvent) error
}

func (m *MockAnalytics) PublishSaleCreated(ctx context.Context, e service.SaleCreatedEvent) error {
	if m.PublishSaleCreatedFunc != nil {
		return m.PublishSaleCreatedFunc(ctx, e)
	}
	return nil
}
