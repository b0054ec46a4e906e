package http

import (
	"io"
	"strconv"

	"negociolisto-core/internal/service"

	"github.com/gin-gonic/gin"
)

type CountHandler struct {
	counts *service.ResponseCountCache
}

func NewCountHandler(counts *service.ResponseCountCache) *CountHandler {
	return &CountHandler{counts: counts}
}

// GET /api/v1/collections/:id/responses/count
// Server-sent events; one "count" event per actual change.
func (h *CountHandler) Stream(c *gin.Context) {
	ch, cancel := h.counts.StreamFor(c.Param("id"))
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("count", strconv.Itoa(n))
			return true
		}
	})
}
