package service

import (
	"context"
	"fmt"
	"time"

	"negociolisto-core/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StreamEvictor drops the cached response stream of a deleted entity.
type StreamEvictor interface {
	Evict(key string)
}

type collectionService struct {
	collections CollectionStore
	counts      StreamEvictor
	log         *zap.Logger
	now         func() time.Time
}

func NewCollectionService(collections CollectionStore, counts StreamEvictor, log *zap.Logger) CollectionService {
	return &collectionService{
		collections: collections,
		counts:      counts,
		log:         log,
		now:         time.Now,
	}
}

func (s *collectionService) Get(ctx context.Context, id string) (*models.Collection, error) {
	col, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}
	return col, nil
}

func (s *collectionService) ApplyTemplate(ctx context.Context, customerID string, tmpl models.WebTemplate) error {
	if !validTemplate(tmpl) {
		return ErrInvalidTemplate
	}
	if _, err := s.collections.UpdateTemplateByCustomer(ctx, customerID, tmpl); err != nil {
		return fmt.Errorf("%w: customer %s: %v", ErrTemplatePropagation, customerID, err)
	}
	return nil
}

// propagateFirst enforces the ordering rule: the customer-wide fan-out must
// complete before the individual write, so no reader ever sees the changed
// collection disagreeing with its siblings.
func (s *collectionService) propagateFirst(ctx context.Context, col *models.Collection) error {
	customer := col.PrimaryCustomer()
	if customer == "" {
		return nil
	}
	return s.ApplyTemplate(ctx, customer, col.WebTemplate)
}

func (s *collectionService) Create(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	col, err := s.buildCollection(uuid.NewString(), in, s.now())
	if err != nil {
		return nil, err
	}

	// The customer may already have collections; they converge to the new
	// template before this one exists.
	if err := s.propagateFirst(ctx, col); err != nil {
		return nil, err
	}
	if err := s.collections.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *collectionService) Update(ctx context.Context, id string, in CollectionInput) (*models.Collection, error) {
	existing, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCollectionNotFound
	}

	col, err := s.buildCollection(id, in, s.now())
	if err != nil {
		return nil, err
	}
	col.CreatedAt = existing.CreatedAt

	if err := s.propagateFirst(ctx, col); err != nil {
		return nil, err
	}
	if err := s.collections.Save(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *collectionService) Delete(ctx context.Context, id string) error {
	ok, err := s.collections.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCollectionNotFound
	}
	// A later subscription for a reused id must start fresh, not replay
	// the deleted collection's counts.
	if s.counts != nil {
		s.counts.Evict(id)
	}
	return nil
}

func (s *collectionService) buildCollection(id string, in CollectionInput, now time.Time) (*models.Collection, error) {
	if !validTemplate(in.WebTemplate) {
		return nil, ErrInvalidTemplate
	}
	status := in.Status
	if status == "" {
		status = models.CollectionStatusDraft
	}

	col := &models.Collection{
		ID:                    id,
		Name:                  in.Name,
		AssociatedCustomerIDs: in.AssociatedCustomerIDs,
		WebTemplate:           in.WebTemplate,
		Color:                 in.Color,
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	col.SyncPrimaryCustomer()

	for i, it := range in.Items {
		col.Items = append(col.Items, models.CollectionItem{
			ID:                uuid.NewString(),
			CollectionID:      id,
			ProductID:         it.ProductID,
			DisplayOrder:      i, // dense, zero-based
			IsFeatured:        it.IsFeatured,
			SpecialPriceCents: it.SpecialPriceCents,
			Notes:             it.Notes,
			CreatedAt:         now,
		})
	}
	return col, nil
}
