package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/dto"
)

// MessageHandler interprets inbound chat traffic: PIN submissions, order
// messages, edits, replies, and button callbacks.
type MessageHandler struct {
	facade CRMFacade
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(facade CRMFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// Session handles POST /api/session: a PIN submission unlocking the sender.
func (h *MessageHandler) Session(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SubmitPIN(c.Request.Context(), req.UserID, req.PIN); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

var cardRequestRe = regexp.MustCompile(`^#(\d+)$`)

// Receive handles POST /api/messages: the gateway webhook. The message text
// decides the interpretation, mirroring how managers talk to the bot.
func (h *MessageHandler) Receive(c *gin.Context) {
	var msg dto.IncomingMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	ctx := c.Request.Context()
	text := strings.TrimSpace(msg.Text)

	// An edit of the original submission re-parses the whole order.
	if msg.Edited {
		order, err := h.facade.EditOrderByOrigin(ctx, msg.ChatID, msg.MessageID, text)
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondOrder(c, "updated", order)
		return
	}

	// A reply to an order message appends to its comment trail.
	if msg.ReplyToMessageID != nil {
		order, err := h.facade.OrderByOrigin(ctx, msg.ChatID, *msg.ReplyToMessageID)
		if err != nil {
			writeError(c, err)
			return
		}
		order, err = h.facade.AppendComment(ctx, order.ID, text)
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondOrder(c, "comment", order)
		return
	}

	// "#12" asks for the order card.
	if m := cardRequestRe.FindStringSubmatch(text); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		order, err := h.facade.Order(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondOrder(c, "card", order)
		return
	}

	// Slash-separated text is an order submission.
	if strings.Contains(text, "/") {
		manager := model.Manager{ID: CurrentSenderID(c), Name: msg.SenderName}
		order, err := h.facade.CreateOrder(ctx, text, manager, msg.ChatID, msg.MessageID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.MessageResponse{Kind: "created", Order: responsePtr(order)})
		return
	}

	// Everything else is a search query.
	orders, err := h.facade.SearchOrders(ctx, text, msg.ChatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Kind: "search", Orders: toOrderResponses(orders)})
}

// Action handles POST /api/actions: compact chat-button callbacks of the form
// "setStatus:<id>:<status>" and "editField:<id>:<field>".
func (h *MessageHandler) Action(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	parts := strings.SplitN(req.Action, ":", 3)
	if len(parts) != 3 {
		c.Status(http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	switch parts[0] {
	case "setStatus":
		order, err := h.facade.SetOrderStatus(ctx, id, model.OrderStatus(parts[2]))
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondOrder(c, "status", order)
	case "editField":
		order, err := h.facade.PatchOrderField(ctx, id, model.OrderField(parts[2]), req.Value)
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondOrder(c, "field", order)
	default:
		c.Status(http.StatusBadRequest)
	}
}

func (h *MessageHandler) respondOrder(c *gin.Context, kind string, order *model.Order) {
	c.JSON(http.StatusOK, dto.MessageResponse{Kind: kind, Order: responsePtr(order)})
}

func responsePtr(order *model.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}
	resp := toOrderResponse(*order)
	return &resp
}
