package dto

// SessionRequest carries a PIN submission from a chat user.
type SessionRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

// IncomingMessage mirrors a chat gateway webhook payload.
type IncomingMessage struct {
	ChatID           int64  `json:"chat_id" binding:"required"`
	MessageID        int64  `json:"message_id" binding:"required"`
	SenderName       string `json:"sender_name"`
	Text             string `json:"text"`
	Edited           bool   `json:"edited,omitempty"`
	ReplyToMessageID *int64 `json:"reply_to_message_id,omitempty"`
}

// MessageResponse tells the gateway how the message was interpreted.
type MessageResponse struct {
	Kind        string          `json:"kind"`
	Order       *OrderResponse  `json:"order,omitempty"`
	Orders      []OrderResponse `json:"orders,omitempty"`
	DuplicateOf int64           `json:"duplicate_of,omitempty"`
}

// ActionRequest is a chat-button callback: a compact action token plus an
// optional free-text value.
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
	Value  string `json:"value,omitempty"`
}
