package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/dto"
)

// OrderHandler serves direct order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/orders?chat_id=&status=&q=&limit=. A query searches
// across every text field; a status filters the newest orders.
func (h *OrderHandler) List(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	ctx := c.Request.Context()

	if query := c.Query("q"); query != "" {
		orders, err := h.facade.SearchOrders(ctx, query, chatID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponses(orders))
		return
	}

	status := c.Query("status")
	if status == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := h.facade.OrdersByStatus(ctx, chatID, model.OrderStatus(status), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Edit handles POST /api/orders/:id/message: a full 5-field re-submission.
func (h *OrderHandler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.EditOrder(c.Request.Context(), id, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// BulkStatus handles POST /api/orders/bulk-status.
func (h *OrderHandler) BulkStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.facade.BulkSetOrderStatus(c.Request.Context(), req.IDs, model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkStatusResponse{Updated: updated})
}
