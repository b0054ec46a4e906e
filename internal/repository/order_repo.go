package repository

import (
	"context"
	"errors"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/stream"

	"gorm.io/gorm"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) error
	ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type orderRepo struct {
	db  *gorm.DB
	hub *stream.Hub
}

func NewOrderRepo(db *gorm.DB, hub *stream.Hub) OrderRepo { return &orderRepo{db: db, hub: hub} }

func (r *orderRepo) notify(collectionID string) {
	if r.hub != nil && collectionID != "" {
		r.hub.Notify(orderTopic(collectionID))
	}
}

func orderTopic(collectionID string) string { return "orders:" + collectionID }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return err
	}
	r.notify(o.CollectionID)
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepo) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	tx := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": gorm.Expr("now()"),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var collectionID string
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Pluck("collection_id", &collectionID).Error; err == nil {
		r.notify(collectionID)
	}
	return nil
}

func (r *orderRepo) ListByCollection(ctx context.Context, collectionID string) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at DESC").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&list).Error
	return list, err
}

func (r *orderRepo) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}
