package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
)

// OrderRepositoryStub stores orders in-memory for tests. Claim semantics
// mirror the transactional behaviour of the real storage: the sent flag flips
// only when dispatch succeeds.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	Orders  map[int64]*model.Order
	History map[int64][]model.CommentRevision
	Next    int64
	Err     error
}

// NewOrderRepositoryStub constructs the stub with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:  make(map[int64]*model.Order),
		History: make(map[int64][]model.CommentRevision),
		Next:    1,
	}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := *order
	result.History = append([]model.CommentRevision(nil), s.History[id]...)
	return &result, nil
}

func (s *OrderRepositoryStub) GetByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.Orders {
		if order.ChatID == chatID && order.MessageID == messageID {
			result := *order
			return &result, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListRecent(ctx context.Context, chatID int64, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	orders := s.chatOrdersLocked(chatID)
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.chatOrdersLocked(chatID) {
		if order.Status == status {
			result = append(result, order)
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListByChat(ctx context.Context, chatID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.chatOrdersLocked(chatID), nil
}

func (s *OrderRepositoryStub) ListCreatedOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.chatOrdersLocked(chatID) {
		if !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListActiveOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	inRange := func(t time.Time) bool { return !t.Before(from) && t.Before(to) }
	var result []model.Order
	for _, order := range s.chatOrdersLocked(chatID) {
		if order.Status == model.OrderStatusPaid || order.Status == model.OrderStatusCanceled {
			continue
		}
		if inRange(order.CreatedAt) || inRange(order.UpdatedAt) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) CountCreatedBy(ctx context.Context, managerID int64, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, order := range s.Orders {
		if order.ManagerID == managerID && !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (s *OrderRepositoryStub) ReplaceFields(ctx context.Context, id int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	applyFieldsLocked(order, fields, reminderAt, now)
	return nil
}

func (s *OrderRepositoryStub) ReplaceFieldsByOrigin(ctx context.Context, chatID, messageID int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for _, order := range s.Orders {
		if order.ChatID == chatID && order.MessageID == messageID {
			applyFieldsLocked(order, fields, reminderAt, now)
			return order.ID, nil
		}
	}
	return 0, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) UpdateField(ctx context.Context, id int64, field model.OrderField, value string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	switch field {
	case model.FieldPrice:
		order.Price = value
	case model.FieldAddress:
		order.Address = value
	case model.FieldCustomerName:
		order.CustomerName = value
	case model.FieldPhone:
		order.Phone = value
	default:
		return domainErrors.ErrInvalidField
	}
	order.UpdatedAt = now
	return nil
}

func (s *OrderRepositoryStub) SetStatus(ctx context.Context, id int64, status model.OrderStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = now
	return nil
}

func (s *OrderRepositoryStub) ReplaceComment(ctx context.Context, id int64, comment string, revision model.CommentRevision, reminderAt *time.Time, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Comment = comment
	order.UpdatedAt = now
	if reminderAt != nil {
		order.ReminderAt = reminderAt
		order.ReminderSent = false
	}
	s.History[id] = append(s.History[id], revision)
	return nil
}

func (s *OrderRepositoryStub) DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var due []model.Order
	for _, order := range s.Orders {
		if order.ReminderAt != nil && !order.ReminderSent && !order.ReminderAt.After(deadline) {
			due = append(due, *order)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due, nil
}

func (s *OrderRepositoryStub) ClaimReminder(ctx context.Context, id int64, dispatch func(model.Order) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	order, ok := s.Orders[id]
	if !ok || order.ReminderSent {
		return false, nil
	}
	if err := dispatch(*order); err != nil {
		return false, err
	}
	order.ReminderSent = true
	return true, nil
}

func (s *OrderRepositoryStub) chatOrdersLocked(chatID int64) []model.Order {
	var result []model.Order
	for _, order := range s.Orders {
		if order.ChatID == chatID {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func applyFieldsLocked(order *model.Order, fields model.OrderFields, reminderAt *time.Time, now time.Time) {
	order.Model = fields.Model
	order.Price = fields.Price
	order.Address = fields.Address
	order.ContactRaw = fields.ContactRaw
	order.Phone = fields.Phone
	order.CustomerName = fields.CustomerName
	order.Comment = fields.Comment
	order.UpdatedAt = now
	if reminderAt != nil {
		order.ReminderAt = reminderAt
		order.ReminderSent = false
	}
}

// SettingsRepositoryStub stores chat settings in-memory for tests.
type SettingsRepositoryStub struct {
	mu       sync.Mutex
	Settings map[int64]*model.ChatSettings
	Err      error
}

// NewSettingsRepositoryStub constructs the stub with an initialized map.
func NewSettingsRepositoryStub() *SettingsRepositoryStub {
	return &SettingsRepositoryStub{Settings: make(map[int64]*model.ChatSettings)}
}

func (s *SettingsRepositoryStub) Get(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	settings, ok := s.Settings[chatID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := *settings
	return &result, nil
}

func (s *SettingsRepositoryStub) SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.ensureLocked(chatID).DailyReportEnabled = enabled
	return nil
}

func (s *SettingsRepositoryStub) SetReportChat(ctx context.Context, chatID, reportChatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.ensureLocked(chatID).ReportChatID = reportChatID
	return nil
}

func (s *SettingsRepositoryStub) ListReportEnabled(ctx context.Context) ([]model.ChatSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.ChatSettings
	for _, settings := range s.Settings {
		if settings.DailyReportEnabled {
			result = append(result, *settings)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ChatID < result[j].ChatID })
	return result, nil
}

func (s *SettingsRepositoryStub) ClaimDailyReport(ctx context.Context, chatID int64, day time.Time, dispatch func() error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	settings, ok := s.Settings[chatID]
	if !ok || !settings.DailyReportEnabled || settings.ReportedOn(day) {
		return false, nil
	}
	if err := dispatch(); err != nil {
		return false, err
	}
	reported := day
	settings.LastReportDate = &reported
	return true, nil
}

func (s *SettingsRepositoryStub) ensureLocked(chatID int64) *model.ChatSettings {
	if settings, ok := s.Settings[chatID]; ok {
		return settings
	}
	settings := &model.ChatSettings{ChatID: chatID}
	s.Settings[chatID] = settings
	return settings
}

// UserRepositoryStub stores authorization flags in-memory for tests.
type UserRepositoryStub struct {
	mu         sync.Mutex
	Authorized map[int64]bool
	Err        error
}

// NewUserRepositoryStub constructs the stub with an initialized map.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Authorized: make(map[int64]bool)}
}

func (s *UserRepositoryStub) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.Authorized[userID], nil
}

func (s *UserRepositoryStub) Authorize(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Authorized == nil {
		s.Authorized = make(map[int64]bool)
	}
	s.Authorized[userID] = true
	return nil
}

var (
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.SettingsRepository = (*SettingsRepositoryStub)(nil)
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
)
