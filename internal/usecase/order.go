package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
)

// LifecycleConfig tunes the order lifecycle manager.
type LifecycleConfig struct {
	Location         *time.Location
	DuplicateWindow  int
	StatusListLimit  int
	MaxCommentLength int
	DailyOrderLimit  int
}

// OrderUseCase orchestrates order creation, edits, and status transitions.
// It owns the lifecycle invariants; persistence stays behind the repository.
type OrderUseCase struct {
	orders repository.OrderRepository
	cfg    LifecycleConfig
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, cfg LifecycleConfig) *OrderUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = 10
	}
	if cfg.StatusListLimit <= 0 {
		cfg.StatusListLimit = 10
	}
	return &OrderUseCase{orders: orders, cfg: cfg}
}

// Create parses a 5-field submission, resolves the reminder expression,
// rejects near-duplicates inside the recent window, and persists a new order
// with status "new".
func (u *OrderUseCase) Create(ctx context.Context, rawText string, manager model.Manager, chatID, messageID int64, now time.Time) (*model.Order, error) {
	fields, err := ParseOrderFields(rawText)
	if err != nil {
		return nil, err
	}

	if u.cfg.MaxCommentLength > 0 && utf8.RuneCountInString(fields.Comment) > u.cfg.MaxCommentLength {
		return nil, domainErrors.NewParseError(
			domainErrors.ParseInvalidField,
			fmt.Sprintf("comment exceeds %d characters", u.cfg.MaxCommentLength),
		)
	}

	if u.cfg.DailyOrderLimit > 0 {
		from, to := dayBounds(now, u.cfg.Location)
		created, err := u.orders.CountCreatedBy(ctx, manager.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("count today's orders: %w", err)
		}
		if created >= u.cfg.DailyOrderLimit {
			return nil, domainErrors.ErrDailyLimitExceeded
		}
	}

	cleaned, reminderAt := ExtractReminder(fields.Comment, now, u.cfg.Location)
	fields.Comment = cleaned

	recent, err := u.orders.ListRecent(ctx, chatID, u.cfg.DuplicateWindow)
	if err != nil {
		return nil, fmt.Errorf("load duplicate window: %w", err)
	}
	if dup := FindDuplicate(fields, recent); dup != nil {
		return nil, &domainErrors.DuplicateOrderError{MatchedID: dup.ID}
	}

	order := &model.Order{
		Model:        fields.Model,
		Price:        fields.Price,
		Address:      fields.Address,
		ContactRaw:   fields.ContactRaw,
		Phone:        fields.Phone,
		CustomerName: fields.CustomerName,
		Comment:      fields.Comment,
		ManagerID:    manager.ID,
		ManagerName:  manager.Name,
		ChatID:       chatID,
		MessageID:    messageID,
		Status:       model.OrderStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
		ReminderAt:   reminderAt,
	}

	return u.orders.Create(ctx, order)
}

// EditFromText replaces every parsed field of an existing order with the
// result of re-parsing a full 5-field message.
func (u *OrderUseCase) EditFromText(ctx context.Context, id int64, rawText string, now time.Time) (*model.Order, error) {
	fields, reminderAt, err := u.reparse(rawText, now)
	if err != nil {
		return nil, err
	}
	if err := u.orders.ReplaceFields(ctx, id, fields, reminderAt, now); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// EditByOrigin is the edit-by-editing-the-original-message path: the order is
// addressed by the chat/message pair of its initial submission.
func (u *OrderUseCase) EditByOrigin(ctx context.Context, chatID, messageID int64, rawText string, now time.Time) (*model.Order, error) {
	fields, reminderAt, err := u.reparse(rawText, now)
	if err != nil {
		return nil, err
	}
	id, err := u.orders.ReplaceFieldsByOrigin(ctx, chatID, messageID, fields, reminderAt, now)
	if err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

func (u *OrderUseCase) reparse(rawText string, now time.Time) (model.OrderFields, *time.Time, error) {
	fields, err := ParseOrderFields(rawText)
	if err != nil {
		return model.OrderFields{}, nil, err
	}
	cleaned, reminderAt := ExtractReminder(fields.Comment, now, u.cfg.Location)
	fields.Comment = cleaned
	return fields, reminderAt, nil
}

// PatchField updates a single order attribute. Phone values are normalized;
// a customer name found next to the phone fills an empty name field.
func (u *OrderUseCase) PatchField(ctx context.Context, id int64, field model.OrderField, value string, now time.Time) (*model.Order, error) {
	if !field.Valid() {
		return nil, domainErrors.ErrInvalidField
	}

	value = strings.TrimSpace(value)

	if field == model.FieldPhone {
		order, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		phone, name := NormalizePhone(value)
		if phone == "" {
			phone = value
		}
		if err := u.orders.UpdateField(ctx, id, model.FieldPhone, phone, now); err != nil {
			return nil, err
		}
		if name != "" && order.CustomerName == "" {
			if err := u.orders.UpdateField(ctx, id, model.FieldCustomerName, name, now); err != nil {
				return nil, err
			}
		}
		return u.orders.GetByID(ctx, id)
	}

	if err := u.orders.UpdateField(ctx, id, field, value, now); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// SetStatus performs an unconditional status transition and stamps the
// update time.
func (u *OrderUseCase) SetStatus(ctx context.Context, id int64, status model.OrderStatus, now time.Time) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if err := u.orders.SetStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// BulkSetStatus applies SetStatus to each id, skipping ids that do not
// exist, and returns the number of orders updated.
func (u *OrderUseCase) BulkSetStatus(ctx context.Context, ids []int64, status model.OrderStatus, now time.Time) (int, error) {
	if !status.Valid() {
		return 0, domainErrors.ErrInvalidStatus
	}
	updated := 0
	for _, id := range ids {
		err := u.orders.SetStatus(ctx, id, status, now)
		if errors.Is(err, domainErrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// AppendComment pushes the current comment onto the audit history and
// replaces it with the new text. A reminder expression inside the new text
// (re)schedules the reminder; its absence leaves any existing schedule alone.
func (u *OrderUseCase) AppendComment(ctx context.Context, id int64, text string, now time.Time) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cleaned, reminderAt := ExtractReminder(text, now, u.cfg.Location)
	revision := model.CommentRevision{ChangedAt: now, Previous: order.Comment}

	if err := u.orders.ReplaceComment(ctx, id, cleaned, revision, reminderAt, now); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// FindByID fetches a single order.
func (u *OrderUseCase) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// FindByOrigin fetches the order created from the given chat message.
func (u *OrderUseCase) FindByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error) {
	return u.orders.GetByOrigin(ctx, chatID, messageID)
}

// Search matches the query case-insensitively against every textual order
// field, including the creator's display name. Most recent matches first.
func (u *OrderUseCase) Search(ctx context.Context, query string, chatID int64) ([]model.Order, error) {
	q := foldForMatch(query)
	if q == "" {
		return nil, nil
	}

	orders, err := u.orders.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var matched []model.Order
	for _, o := range orders {
		haystacks := []string{
			o.Model, o.Price, o.Address, o.ContactRaw,
			o.Phone, o.CustomerName, o.Comment, o.ManagerName,
		}
		for _, h := range haystacks {
			if strings.Contains(foldForMatch(h), q) {
				matched = append(matched, o)
				break
			}
		}
	}
	return matched, nil
}

// ListByStatus returns the newest orders with the given status, capped at
// limit (configured default when limit <= 0).
func (u *OrderUseCase) ListByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if limit <= 0 {
		limit = u.cfg.StatusListLimit
	}
	return u.orders.ListByStatus(ctx, chatID, status, limit)
}

// DueReminders returns unsent reminders scheduled at or before deadline.
func (u *OrderUseCase) DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error) {
	return u.orders.DueReminders(ctx, deadline)
}

// ClaimReminder atomically marks the reminder sent and runs dispatch; a
// dispatch error releases the claim for the next poll.
func (u *OrderUseCase) ClaimReminder(ctx context.Context, id int64, dispatch func(model.Order) error) (bool, error) {
	return u.orders.ClaimReminder(ctx, id, dispatch)
}

// dayBounds returns the half-open local-day interval containing t.
func dayBounds(t time.Time, loc *time.Location) (from, to time.Time) {
	t = t.In(loc)
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}
