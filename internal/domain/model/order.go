package model

import "time"

// OrderStatus describes the order workflow tag. Any status is reachable from
// any other; transitions are timestamped but never forbidden.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivery   OrderStatus = "delivery"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// AllStatuses lists workflow statuses in display order.
var AllStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusDelivery,
	OrderStatusPaid,
	OrderStatusCanceled,
}

// Valid reports whether s is one of the five workflow statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusDelivery, OrderStatusPaid, OrderStatusCanceled:
		return true
	}
	return false
}

// OrderField names a single patchable order attribute.
type OrderField string

const (
	FieldPrice        OrderField = "price"
	FieldAddress      OrderField = "address"
	FieldCustomerName OrderField = "customer_name"
	FieldPhone        OrderField = "phone"
)

// Valid reports whether f is a patchable field.
func (f OrderField) Valid() bool {
	switch f {
	case FieldPrice, FieldAddress, FieldCustomerName, FieldPhone:
		return true
	}
	return false
}

// Manager identifies the person who created or edited an order.
type Manager struct {
	ID   int64
	Name string
}

// CommentRevision is one audit entry: the comment value that was replaced and
// when the replacement happened.
type CommentRevision struct {
	ChangedAt time.Time
	Previous  string
}

// OrderFields is the structured result of parsing a 5-segment submission.
type OrderFields struct {
	Model        string
	Price        string
	Address      string
	ContactRaw   string
	Phone        string
	CustomerName string
	Comment      string
}

// Order is the tracked customer transaction record.
type Order struct {
	ID           int64
	Model        string
	Price        string
	Address      string
	ContactRaw   string
	Phone        string
	CustomerName string
	Comment      string
	ManagerID    int64
	ManagerName  string
	ChatID       int64
	MessageID    int64
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReminderAt   *time.Time
	ReminderSent bool
	History      []CommentRevision
}
