package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/adapter/notify"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

// Notifier is the outbound delivery boundary the facade depends on.
type Notifier interface {
	SendMessage(ctx context.Context, msg notify.Message) error
	SendDocument(ctx context.Context, doc notify.Document) error
}

// CRMFacade aggregates the use cases behind a single surface consumed by the
// HTTP layer and the background workers.
type CRMFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	reports  *usecase.ReportUseCase
	settings *usecase.SettingsUseCase
	notifier Notifier
	location *time.Location

	now func() time.Time
}

// NewCRMFacade constructs the application facade.
func NewCRMFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	reports *usecase.ReportUseCase,
	settings *usecase.SettingsUseCase,
	notifier Notifier,
	location *time.Location,
) *CRMFacade {
	if location == nil {
		location = time.Local
	}
	return &CRMFacade{
		auth:     auth,
		orders:   orders,
		reports:  reports,
		settings: settings,
		notifier: notifier,
		location: location,
		now:      time.Now,
	}
}

func (f *CRMFacade) SubmitPIN(ctx context.Context, userID int64, pin string) error {
	return f.auth.SubmitPIN(ctx, userID, pin)
}

func (f *CRMFacade) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return f.auth.IsAuthorized(ctx, userID)
}

func (f *CRMFacade) CreateOrder(ctx context.Context, text string, manager model.Manager, chatID, messageID int64) (*model.Order, error) {
	return f.orders.Create(ctx, text, manager, chatID, messageID, f.now())
}

func (f *CRMFacade) EditOrder(ctx context.Context, id int64, text string) (*model.Order, error) {
	return f.orders.EditFromText(ctx, id, text, f.now())
}

func (f *CRMFacade) EditOrderByOrigin(ctx context.Context, chatID, messageID int64, text string) (*model.Order, error) {
	return f.orders.EditByOrigin(ctx, chatID, messageID, text, f.now())
}

func (f *CRMFacade) PatchOrderField(ctx context.Context, id int64, field model.OrderField, value string) (*model.Order, error) {
	return f.orders.PatchField(ctx, id, field, value, f.now())
}

func (f *CRMFacade) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.SetStatus(ctx, id, status, f.now())
}

func (f *CRMFacade) BulkSetOrderStatus(ctx context.Context, ids []int64, status model.OrderStatus) (int, error) {
	return f.orders.BulkSetStatus(ctx, ids, status, f.now())
}

func (f *CRMFacade) AppendComment(ctx context.Context, id int64, text string) (*model.Order, error) {
	return f.orders.AppendComment(ctx, id, text, f.now())
}

func (f *CRMFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.FindByID(ctx, id)
}

func (f *CRMFacade) OrderByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error) {
	return f.orders.FindByOrigin(ctx, chatID, messageID)
}

func (f *CRMFacade) SearchOrders(ctx context.Context, query string, chatID int64) ([]model.Order, error) {
	return f.orders.Search(ctx, query, chatID)
}

func (f *CRMFacade) OrdersByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
	return f.orders.ListByStatus(ctx, chatID, status, limit)
}

// BuildReport renders a report over the requested scope for today.
func (f *CRMFacade) BuildReport(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) (report.Document, error) {
	day := f.now().In(f.location)
	orders, err := f.reports.Orders(ctx, chatID, scope, day)
	if err != nil {
		return report.Document{}, err
	}
	return report.Render(format, day, orders, usecase.Summarize(orders))
}

func (f *CRMFacade) ChatSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	return f.settings.Get(ctx, chatID)
}

func (f *CRMFacade) SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error {
	return f.settings.SetDailyReportEnabled(ctx, chatID, enabled)
}

func (f *CRMFacade) SetReportChat(ctx context.Context, chatID, reportChatID int64) error {
	return f.settings.SetReportChat(ctx, chatID, reportChatID)
}

// DueReminders feeds the reminder dispatcher.
func (f *CRMFacade) DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error) {
	return f.orders.DueReminders(ctx, deadline)
}

// DeliverReminder claims the reminder and pushes the notification through the
// gateway inside the same transaction, so a delivery failure releases the
// claim.
func (f *CRMFacade) DeliverReminder(ctx context.Context, orderID int64) (bool, error) {
	return f.orders.ClaimReminder(ctx, orderID, func(o model.Order) error {
		return f.notifier.SendMessage(ctx, notify.Message{
			ChatID: o.ChatID,
			Text:   reminderText(o),
		})
	})
}

// ReportTargets lists chats with the daily report enabled.
func (f *CRMFacade) ReportTargets(ctx context.Context) ([]model.ChatSettings, error) {
	return f.settings.ReportTargets(ctx)
}

// DeliverDailyReport claims the report slot for day and sends the day's
// summary to the configured destination.
func (f *CRMFacade) DeliverDailyReport(ctx context.Context, target model.ChatSettings, day time.Time) (bool, error) {
	return f.settings.ClaimDailyReport(ctx, target.ChatID, day, func() error {
		orders, err := f.reports.Orders(ctx, target.ChatID, usecase.ScopeDaily, day)
		if err != nil {
			return err
		}
		doc, err := report.Render(report.FormatText, day, orders, usecase.Summarize(orders))
		if err != nil {
			return err
		}
		return f.notifier.SendMessage(ctx, notify.Message{
			ChatID: target.Destination(),
			Text:   string(doc.Content),
		})
	})
}

// SendReportDocument renders a report and delivers it as a file attachment.
func (f *CRMFacade) SendReportDocument(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) error {
	doc, err := f.BuildReport(ctx, chatID, scope, format)
	if err != nil {
		return err
	}
	return f.notifier.SendDocument(ctx, notify.Document{
		ChatID:   chatID,
		Caption:  "Отчёт по заказам",
		Filename: doc.Filename,
		MIME:     doc.MIME,
		Content:  doc.Content,
	})
}

func reminderText(o model.Order) string {
	text := fmt.Sprintf("Напоминание по заказу #%d: %s", o.ID, o.Model)
	if o.CustomerName != "" {
		text += fmt.Sprintf("\nКлиент: %s %s", o.CustomerName, o.Phone)
	}
	if o.Comment != "" {
		text += "\n" + o.Comment
	}
	return text
}
