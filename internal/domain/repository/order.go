package repository

import (
	"context"
	"time"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists a new order and returns it with the assigned id.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetByOrigin looks an order up by the chat/message pair of its original
	// submission. Used to correlate edits of the original message.
	GetByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error)
	// ListRecent returns up to limit newest orders of the chat, most recent
	// first. Feeds the duplicate window.
	ListRecent(ctx context.Context, chatID int64, limit int) ([]model.Order, error)
	ListByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error)
	ListByChat(ctx context.Context, chatID int64) ([]model.Order, error)
	ListCreatedOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error)
	// ListActiveOn returns orders created or updated inside [from, to) whose
	// status is neither paid nor canceled.
	ListActiveOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error)
	CountCreatedBy(ctx context.Context, managerID int64, from, to time.Time) (int, error)

	// ReplaceFields rewrites all parsed fields of the order and its reminder
	// schedule (full re-parse edit).
	ReplaceFields(ctx context.Context, id int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) error
	ReplaceFieldsByOrigin(ctx context.Context, chatID, messageID int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) (int64, error)
	// UpdateField patches a single attribute.
	UpdateField(ctx context.Context, id int64, field model.OrderField, value string, now time.Time) error
	SetStatus(ctx context.Context, id int64, status model.OrderStatus, now time.Time) error
	// ReplaceComment overwrites the display comment, appends the prior value
	// to the audit history, and, when reminderAt is non-nil, reschedules the
	// reminder and resets its sent flag.
	ReplaceComment(ctx context.Context, id int64, comment string, revision model.CommentRevision, reminderAt *time.Time, now time.Time) error

	// DueReminders returns unsent reminders scheduled at or before deadline.
	DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error)
	// ClaimReminder atomically flips reminder_sent false→true and runs
	// dispatch inside the same transaction. A dispatch error rolls the claim
	// back so the next poll retries. Returns false when the reminder was
	// already claimed.
	ClaimReminder(ctx context.Context, id int64, dispatch func(model.Order) error) (bool, error)
}
