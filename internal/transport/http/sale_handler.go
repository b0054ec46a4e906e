package http

import (
	"errors"
	"strconv"

	"negociolisto-core/internal/repository"
	"negociolisto-core/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	sales service.SaleService
}

func NewSaleHandler(sales service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.sales.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, sale)
}

// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	var f repository.SaleListFilter
	if v := c.Query("customer_id"); v != "" {
		f.CustomerID = &v
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.sales.List(c.Request.Context(), f)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"sales": list, "total": total})
}
