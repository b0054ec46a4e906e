package repository

import (
	"negociolisto-core/internal/stream"

	"gorm.io/gorm"
)

type Repository struct {
	DB          *gorm.DB
	Hub         *stream.Hub
	Orders      OrderRepo
	Products    ProductRepo
	Sales       SaleRepo
	Collections CollectionRepo
}

// Writes that must be atomic across tables (sale recording, collection item
// replacement) open their own transaction inside the owning repo.
func New(db *gorm.DB, hub *stream.Hub) *Repository {
	return &Repository{
		DB:          db,
		Hub:         hub,
		Orders:      NewOrderRepo(db, hub),
		Products:    NewProductRepo(db),
		Sales:       NewSaleRepo(db),
		Collections: NewCollectionRepo(db),
	}
}
