package http

import (
	"errors"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/repository"
	"negociolisto-core/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders service.OrderService
	sales  service.SaleService
}

func NewOrderHandler(orders service.OrderService, sales service.SaleService) *OrderHandler {
	return &OrderHandler{orders: orders, sales: sales}
}

type createOrderItemReq struct {
	ProductID     string  `json:"product_id" binding:"required"`
	Quantity      uint32  `json:"quantity" binding:"required,gte=1"`
	Rating        *int16  `json:"rating"`
	Notes         *string `json:"notes"`
	Customization *string `json:"customization"`
}

type createOrderReq struct {
	ID             string               `json:"id"`
	CollectionID   string               `json:"collection_id" binding:"required"`
	CustomerID     *string              `json:"customer_id"`
	Status         string               `json:"status"`
	Urgent         bool                 `json:"urgent"`
	Observations   string               `json:"observations"`
	DeliveryMethod string               `json:"delivery_method"`
	PaymentMethod  string               `json:"payment_method"`
	Items          []createOrderItemReq `json:"items" binding:"required"`
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	in := service.CreateOrderInput{
		ID:             req.ID,
		CollectionID:   req.CollectionID,
		CustomerID:     req.CustomerID,
		Status:         models.OrderStatus(req.Status),
		Urgent:         req.Urgent,
		Observations:   req.Observations,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.CreateOrderItem{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			Rating:        it.Rating,
			Notes:         it.Notes,
			Customization: it.Customization,
		})
	}

	ord, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	Created(c, ord)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	ord, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	Success(c, ord)
}

// GET /api/v1/collections/:id/orders
func (h *OrderHandler) ListByCollection(c *gin.Context) {
	list, err := h.orders.ListByCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"orders": list})
}

type transitionReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/v1/orders/:id/status
func (h *OrderHandler) Transition(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ord, err := h.orders.Transition(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	Success(c, ord)
}

// POST /api/v1/orders/:id/materialize
// Operator re-drive for a delivered order whose sale is missing.
func (h *OrderHandler) Materialize(c *gin.Context) {
	ord, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	if err := h.sales.MaterializeOrder(c.Request.Context(), ord); err != nil {
		h.writeOrderError(c, err)
		return
	}
	Success(c, gin.H{"sale_id": models.SaleIDForOrder(ord.ID)})
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	var productErr *service.ProductNotFoundError
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrDuplicateProduct):
		BadRequest(c, err.Error())
	case errors.As(err, &stockErr), errors.As(err, &productErr),
		errors.Is(err, service.ErrOrderNotDelivered),
		errors.Is(err, repository.ErrStockConflict):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
