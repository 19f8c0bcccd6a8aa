package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/dto"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/middleware"
)

// CurrentSenderID extracts the authorized chat user identifier from context.
func CurrentSenderID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.SenderIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// writeError maps domain failures onto HTTP statuses. Parse and duplicate
// outcomes carry structured payloads so the gateway can phrase the reply.
func writeError(c *gin.Context, err error) {
	if pe, ok := domainErrors.IsParseError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  pe.Error(),
			"reason": string(pe.Reason),
		})
		return
	}
	if de, ok := domainErrors.IsDuplicate(err); ok {
		c.JSON(http.StatusConflict, dto.MessageResponse{
			Kind:        "duplicate",
			DuplicateOf: de.MatchedID,
		})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.Status(http.StatusUnauthorized)
	case errors.Is(err, domainErrors.ErrInvalidStatus), errors.Is(err, domainErrors.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrDailyLimitExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		c.Status(http.StatusServiceUnavailable)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           order.ID,
		Model:        order.Model,
		Price:        order.Price,
		Address:      order.Address,
		Phone:        order.Phone,
		CustomerName: order.CustomerName,
		Comment:      order.Comment,
		ManagerName:  order.ManagerName,
		ChatID:       order.ChatID,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		ReminderAt:   order.ReminderAt,
	}
	for _, rev := range order.History {
		resp.History = append(resp.History, dto.CommentRevision{
			ChangedAt: rev.ChangedAt,
			Previous:  rev.Previous,
		})
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	result := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result
}
