package service

import (
	"context"

	"negociolisto-core/internal/models"
)

type CollectionItemInput struct {
	ProductID         string
	IsFeatured        bool
	SpecialPriceCents *int64
	Notes             *string
}

type CollectionInput struct {
	Name                  string
	AssociatedCustomerIDs []string
	WebTemplate           models.WebTemplate
	Color                 *string
	Status                models.CollectionStatus
	// Item order is authoritative: display order is normalized dense and
	// zero-based from the slice.
	Items []CollectionItemInput
}

type CollectionService interface {
	Get(ctx context.Context, id string) (*models.Collection, error)
	// Create and Update are the first-class propagate-then-write
	// operations: the template fan-out to the customer's sibling
	// collections completes before the individual record is persisted, or
	// neither happens.
	Create(ctx context.Context, in CollectionInput) (*models.Collection, error)
	Update(ctx context.Context, id string, in CollectionInput) (*models.Collection, error)
	Delete(ctx context.Context, id string) error
	// ApplyTemplate rewrites the template of every collection whose first
	// associated customer is customerID.
	ApplyTemplate(ctx context.Context, customerID string, tmpl models.WebTemplate) error
}

func validTemplate(t models.WebTemplate) bool {
	switch t {
	case models.TemplateClassic, models.TemplateModern, models.TemplateElegant,
		models.TemplateDark, models.TemplateMinimal:
		return true
	}
	return false
}
