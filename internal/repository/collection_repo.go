package repository

import (
	"context"
	"errors"

	"negociolisto-core/internal/models"

	"gorm.io/gorm"
)

type CollectionRepo interface {
	Create(ctx context.Context, c *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	// ListByCustomer returns every collection whose first associated
	// customer is customerID.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Collection, error)
	Save(ctx context.Context, c *models.Collection) error
	// UpdateTemplateByCustomer rewrites web_template for all collections of
	// the customer in a single statement.
	UpdateTemplateByCustomer(ctx context.Context, customerID string, tmpl models.WebTemplate) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type collectionRepo struct{ db *gorm.DB }

func NewCollectionRepo(db *gorm.DB) CollectionRepo { return &collectionRepo{db: db} }

func (r *collectionRepo) Create(ctx context.Context, c *models.Collection) error {
	c.SyncPrimaryCustomer()
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepo) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var col models.Collection
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		First(&col, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (r *collectionRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Collection, error) {
	var list []models.Collection
	err := r.db.WithContext(ctx).
		Where("primary_customer_id = ?", customerID).
		Order("created_at ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Find(&list).Error
	return list, err
}

// Save replaces the collection row and its items wholesale. Item replacement
// keeps display_order authoritative for the snapshot being written.
func (r *collectionRepo) Save(ctx context.Context, c *models.Collection) error {
	c.SyncPrimaryCustomer()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", c.ID).Delete(&models.CollectionItem{}).Error; err != nil {
			return err
		}
		return tx.Save(c).Error
	})
}

func (r *collectionRepo) UpdateTemplateByCustomer(ctx context.Context, customerID string, tmpl models.WebTemplate) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Collection{}).
		Where("primary_customer_id = ?", customerID).
		Updates(map[string]any{"web_template": tmpl, "updated_at": gorm.Expr("now()")})
	return tx.RowsAffected, tx.Error
}

func (r *collectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Collection{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
