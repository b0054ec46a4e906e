package repository

import (
	"context"
	"errors"
	"time"

	"negociolisto-core/internal/models"

	"gorm.io/gorm"
)

type SaleListFilter struct {
	CustomerID *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// ErrStockConflict: stock changed between the caller's precheck and the
// conditional decrement inside Record. The transaction is rolled back whole.
var ErrStockConflict = errors.New("stock changed concurrently")

type SaleRepo interface {
	Create(ctx context.Context, s *models.Sale) error
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f SaleListFilter) ([]models.Sale, int64, error)
	// Record persists the sale and decrements stock for every line item as
	// one transaction. Re-verifies the idempotency witness right before the
	// insert; recording an already-recorded sale is a no-op.
	Record(ctx context.Context, s *models.Sale) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepo(db *gorm.DB) SaleRepo { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *models.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) Record(ctx context.Context, s *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Sale{}).Where("id = ?", s.ID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return nil
		}
		for _, it := range s.Items {
			res := tx.Exec(`
UPDATE products
SET stock_quantity = stock_quantity - @q,
    updated_at = now()
WHERE id = @pid
  AND stock_quantity >= @q
`, map[string]any{"pid": it.ProductID, "q": it.Quantity})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStockConflict
			}
		}
		return tx.Create(s).Error
	})
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *saleRepo) List(ctx context.Context, f SaleListFilter) ([]models.Sale, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Sale{})

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Sale
	err := q.Order("date DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&list).Error
	return list, total, err
}
