package http

import (
	"errors"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collections service.CollectionService
}

func NewCollectionHandler(collections service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

type collectionItemReq struct {
	ProductID         string  `json:"product_id" binding:"required"`
	IsFeatured        bool    `json:"is_featured"`
	SpecialPriceCents *int64  `json:"special_price_cents"`
	Notes             *string `json:"notes"`
}

type collectionReq struct {
	Name                  string              `json:"name" binding:"required"`
	AssociatedCustomerIDs []string            `json:"associated_customer_ids"`
	WebTemplate           string              `json:"web_template" binding:"required"`
	Color                 *string             `json:"color"`
	Status                string              `json:"status"`
	Items                 []collectionItemReq `json:"items"`
}

func (r collectionReq) toInput() service.CollectionInput {
	in := service.CollectionInput{
		Name:                  r.Name,
		AssociatedCustomerIDs: r.AssociatedCustomerIDs,
		WebTemplate:           models.WebTemplate(r.WebTemplate),
		Color:                 r.Color,
		Status:                models.CollectionStatus(r.Status),
	}
	for _, it := range r.Items {
		in.Items = append(in.Items, service.CollectionItemInput{
			ProductID:         it.ProductID,
			IsFeatured:        it.IsFeatured,
			SpecialPriceCents: it.SpecialPriceCents,
			Notes:             it.Notes,
		})
	}
	return in
}

// POST /api/v1/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req collectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	col, err := h.collections.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	Created(c, col)
}

// GET /api/v1/collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	col, err := h.collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	Success(c, col)
}

// PUT /api/v1/collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	var req collectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	col, err := h.collections.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	Success(c, col)
}

// DELETE /api/v1/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	if err := h.collections.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeCollectionError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

type applyTemplateReq struct {
	WebTemplate string `json:"web_template" binding:"required"`
}

// PUT /api/v1/customers/:id/template
func (h *CollectionHandler) ApplyTemplate(c *gin.Context) {
	var req applyTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	err := h.collections.ApplyTemplate(c.Request.Context(), c.Param("id"), models.WebTemplate(req.WebTemplate))
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	Success(c, gin.H{"applied": true})
}

func (h *CollectionHandler) writeCollectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidTemplate):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrTemplatePropagation):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
