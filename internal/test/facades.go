package test

import (
	"context"
	"sync"
	"time"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/adapter/notify"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

// AuthFacadeStub simulates the PIN gate for HTTP layer tests.
type AuthFacadeStub struct {
	SubmitFn     func(context.Context, int64, string) error
	AuthorizedFn func(context.Context, int64) (bool, error)
}

func (s AuthFacadeStub) SubmitPIN(ctx context.Context, userID int64, pin string) error {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, pin)
	}
	return nil
}

func (s AuthFacadeStub) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	if s.AuthorizedFn != nil {
		return s.AuthorizedFn(ctx, userID)
	}
	return true, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, string, model.Manager, int64, int64) (*model.Order, error)
	EditFn         func(context.Context, int64, string) (*model.Order, error)
	EditByOriginFn func(context.Context, int64, int64, string) (*model.Order, error)
	CommentFn      func(context.Context, int64, string) (*model.Order, error)
	PatchFn        func(context.Context, int64, model.OrderField, string) (*model.Order, error)
	SetStatusFn    func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	BulkFn         func(context.Context, []int64, model.OrderStatus) (int, error)
	OrderFn        func(context.Context, int64) (*model.Order, error)
	ByOriginFn     func(context.Context, int64, int64) (*model.Order, error)
	SearchFn       func(context.Context, string, int64) ([]model.Order, error)
	ByStatusFn     func(context.Context, int64, model.OrderStatus, int) ([]model.Order, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, text string, manager model.Manager, chatID, messageID int64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, text, manager, chatID, messageID)
	}
	return &model.Order{ID: 1, ChatID: chatID, MessageID: messageID, Status: model.OrderStatusNew}, nil
}

func (s OrderFacadeStub) EditOrder(ctx context.Context, id int64, text string) (*model.Order, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, id, text)
	}
	return &model.Order{ID: id}, nil
}

func (s OrderFacadeStub) EditOrderByOrigin(ctx context.Context, chatID, messageID int64, text string) (*model.Order, error) {
	if s.EditByOriginFn != nil {
		return s.EditByOriginFn(ctx, chatID, messageID, text)
	}
	return &model.Order{ID: 1, ChatID: chatID, MessageID: messageID}, nil
}

func (s OrderFacadeStub) AppendComment(ctx context.Context, id int64, text string) (*model.Order, error) {
	if s.CommentFn != nil {
		return s.CommentFn(ctx, id, text)
	}
	return &model.Order{ID: id, Comment: text}, nil
}

func (s OrderFacadeStub) PatchOrderField(ctx context.Context, id int64, field model.OrderField, value string) (*model.Order, error) {
	if s.PatchFn != nil {
		return s.PatchFn(ctx, id, field, value)
	}
	return &model.Order{ID: id}, nil
}

func (s OrderFacadeStub) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s OrderFacadeStub) BulkSetOrderStatus(ctx context.Context, ids []int64, status model.OrderStatus) (int, error) {
	if s.BulkFn != nil {
		return s.BulkFn(ctx, ids, status)
	}
	return len(ids), nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

func (s OrderFacadeStub) OrderByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error) {
	if s.ByOriginFn != nil {
		return s.ByOriginFn(ctx, chatID, messageID)
	}
	return &model.Order{ID: 1, ChatID: chatID, MessageID: messageID}, nil
}

func (s OrderFacadeStub) SearchOrders(ctx context.Context, query string, chatID int64) ([]model.Order, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query, chatID)
	}
	return nil, nil
}

func (s OrderFacadeStub) OrdersByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.ByStatusFn != nil {
		return s.ByStatusFn(ctx, chatID, status, limit)
	}
	return nil, nil
}

// ReportFacadeStub simulates report and settings operations.
type ReportFacadeStub struct {
	BuildFn       func(context.Context, int64, usecase.ReportScope, report.Format) (report.Document, error)
	SendFn        func(context.Context, int64, usecase.ReportScope, report.Format) error
	SettingsFn    func(context.Context, int64) (*model.ChatSettings, error)
	SetEnabledFn  func(context.Context, int64, bool) error
	SetReportToFn func(context.Context, int64, int64) error
}

func (s ReportFacadeStub) BuildReport(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) (report.Document, error) {
	if s.BuildFn != nil {
		return s.BuildFn(ctx, chatID, scope, format)
	}
	return report.Document{Filename: "report.txt", MIME: "text/plain; charset=utf-8", Content: []byte("ok")}, nil
}

func (s ReportFacadeStub) SendReportDocument(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, chatID, scope, format)
	}
	return nil
}

func (s ReportFacadeStub) ChatSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	if s.SettingsFn != nil {
		return s.SettingsFn(ctx, chatID)
	}
	return &model.ChatSettings{ChatID: chatID}, nil
}

func (s ReportFacadeStub) SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error {
	if s.SetEnabledFn != nil {
		return s.SetEnabledFn(ctx, chatID, enabled)
	}
	return nil
}

func (s ReportFacadeStub) SetReportChat(ctx context.Context, chatID, reportChatID int64) error {
	if s.SetReportToFn != nil {
		return s.SetReportToFn(ctx, chatID, reportChatID)
	}
	return nil
}

// CRMFacadeStub aggregates facade dependencies for HTTP layer tests.
type CRMFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ReportFacadeStub
}

// ReminderFacadeStub feeds the reminder dispatcher in worker tests.
type ReminderFacadeStub struct {
	mu        sync.Mutex
	Due       []model.Order
	DueErr    error
	Delivered []int64
	DeliverFn func(context.Context, int64) (bool, error)
}

func (s *ReminderFacadeStub) DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DueErr != nil {
		return nil, s.DueErr
	}
	return append([]model.Order(nil), s.Due...), nil
}

func (s *ReminderFacadeStub) DeliverReminder(ctx context.Context, orderID int64) (bool, error) {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Delivered = append(s.Delivered, orderID)
	return true, nil
}

// DeliveredIDs returns a snapshot of delivered order ids.
func (s *ReminderFacadeStub) DeliveredIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Delivered...)
}

// ReportingFacadeStub feeds the daily reporter in worker tests.
type ReportingFacadeStub struct {
	mu         sync.Mutex
	Targets    []model.ChatSettings
	TargetsErr error
	Delivered  []int64
	DeliverFn  func(context.Context, model.ChatSettings, time.Time) (bool, error)
}

func (s *ReportingFacadeStub) ReportTargets(ctx context.Context) ([]model.ChatSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TargetsErr != nil {
		return nil, s.TargetsErr
	}
	return append([]model.ChatSettings(nil), s.Targets...), nil
}

func (s *ReportingFacadeStub) DeliverDailyReport(ctx context.Context, target model.ChatSettings, day time.Time) (bool, error) {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, target, day)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Delivered = append(s.Delivered, target.ChatID)
	return true, nil
}

// DeliveredIDs returns a snapshot of reported chat ids.
func (s *ReportingFacadeStub) DeliveredIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Delivered...)
}

// NotifierStub records outbound notifications.
type NotifierStub struct {
	mu         sync.Mutex
	Messages   []notify.Message
	Documents  []notify.Document
	MessageErr error
	DocErr     error
}

func (s *NotifierStub) SendMessage(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MessageErr != nil {
		return s.MessageErr
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

func (s *NotifierStub) SendDocument(ctx context.Context, doc notify.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DocErr != nil {
		return s.DocErr
	}
	s.Documents = append(s.Documents, doc)
	return nil
}

// SentMessages returns a snapshot of recorded messages.
func (s *NotifierStub) SentMessages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.Messages...)
}

// SentDocuments returns a snapshot of recorded documents.
func (s *NotifierStub) SentDocuments() []notify.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Document(nil), s.Documents...)
}
