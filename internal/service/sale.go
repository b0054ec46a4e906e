package service

import (
	"context"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/repository"
)

type SaleService interface {
	Materializer
	Get(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, f repository.SaleListFilter) ([]models.Sale, int64, error)
}
