package dto

import "time"

// OrderResponse is the order card serialized for the gateway.
type OrderResponse struct {
	ID           int64             `json:"id"`
	Model        string            `json:"model"`
	Price        string            `json:"price"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	CustomerName string            `json:"customer_name"`
	Comment      string            `json:"comment,omitempty"`
	ManagerName  string            `json:"manager_name,omitempty"`
	ChatID       int64             `json:"chat_id"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	ReminderAt   *time.Time        `json:"reminder_at,omitempty"`
	History      []CommentRevision `json:"history,omitempty"`
}

// CommentRevision is one audit entry of the comment history.
type CommentRevision struct {
	ChangedAt time.Time `json:"changed_at"`
	Previous  string    `json:"previous"`
}

// BulkStatusRequest applies one status to a batch of orders.
type BulkStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required"`
	Status string  `json:"status" binding:"required"`
}

// BulkStatusResponse reports how many orders the batch touched.
type BulkStatusResponse struct {
	Updated int `json:"updated"`
}

// EditRequest carries a full 5-field re-submission for an existing order.
type EditRequest struct {
	Text string `json:"text" binding:"required"`
}
