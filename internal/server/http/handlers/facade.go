package handlers

import (
	"context"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

// AuthFacade describes the PIN gate capabilities required by handlers.
type AuthFacade interface {
	SubmitPIN(ctx context.Context, userID int64, pin string) error
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, text string, manager model.Manager, chatID, messageID int64) (*model.Order, error)
	EditOrder(ctx context.Context, id int64, text string) (*model.Order, error)
	EditOrderByOrigin(ctx context.Context, chatID, messageID int64, text string) (*model.Order, error)
	AppendComment(ctx context.Context, id int64, text string) (*model.Order, error)
	PatchOrderField(ctx context.Context, id int64, field model.OrderField, value string) (*model.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	BulkSetOrderStatus(ctx context.Context, ids []int64, status model.OrderStatus) (int, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	OrderByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error)
	SearchOrders(ctx context.Context, query string, chatID int64) ([]model.Order, error)
	OrdersByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error)
}

// ReportFacade provides report and chat-settings operations.
type ReportFacade interface {
	BuildReport(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) (report.Document, error)
	SendReportDocument(ctx context.Context, chatID int64, scope usecase.ReportScope, format report.Format) error
	ChatSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error)
	SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error
	SetReportChat(ctx context.Context, chatID, reportChatID int64) error
}

// CRMFacade aggregates the full set of operations used across handlers.
type CRMFacade interface {
	AuthFacade
	OrderFacade
	ReportFacade
}
