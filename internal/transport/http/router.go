package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(orders *OrderHandler, collections *CollectionHandler, sales *SaleHandler, counts *CountHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/orders", orders.Create)
		v1.GET("/orders/:id", orders.Get)
		v1.PUT("/orders/:id/status", orders.Transition)
		v1.POST("/orders/:id/materialize", orders.Materialize)

		v1.GET("/collections/:id/orders", orders.ListByCollection)
		v1.GET("/collections/:id/responses/count", counts.Stream)
		v1.POST("/collections", collections.Create)
		v1.GET("/collections/:id", collections.Get)
		v1.PUT("/collections/:id", collections.Update)
		v1.DELETE("/collections/:id", collections.Delete)

		v1.PUT("/customers/:id/template", collections.ApplyTemplate)

		v1.GET("/sales", sales.List)
		v1.GET("/sales/:id", sales.Get)
	}

	return r
}
