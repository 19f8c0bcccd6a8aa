package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
)

// ReportScope selects which order set feeds a report.
type ReportScope string

const (
	// ScopeAll covers every order of the chat.
	ScopeAll ReportScope = "all"
	// ScopeDaily covers orders created on the report day.
	ScopeDaily ReportScope = "daily"
	// ScopeActive covers orders created or touched on the report day that
	// are still neither paid nor canceled.
	ScopeActive ReportScope = "active"
)

// ReportUseCase selects report inputs and computes aggregate summaries.
type ReportUseCase struct {
	orders   repository.OrderRepository
	location *time.Location
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(orders repository.OrderRepository, location *time.Location) *ReportUseCase {
	if location == nil {
		location = time.Local
	}
	return &ReportUseCase{orders: orders, location: location}
}

// Orders returns the order set for the scope, most recent first.
func (u *ReportUseCase) Orders(ctx context.Context, chatID int64, scope ReportScope, day time.Time) ([]model.Order, error) {
	switch scope {
	case ScopeAll:
		return u.orders.ListByChat(ctx, chatID)
	case ScopeDaily:
		from, to := dayBounds(day, u.location)
		return u.orders.ListCreatedOn(ctx, chatID, from, to)
	case ScopeActive:
		from, to := dayBounds(day, u.location)
		return u.orders.ListActiveOn(ctx, chatID, from, to)
	default:
		return nil, domainErrors.ErrInvalidField
	}
}

// Summarize computes counts and revenue over a set of orders. Revenue sums
// only prices that parse as numbers; every order counts toward Count and the
// status distribution. Deterministic, no side effects.
func Summarize(orders []model.Order) model.Summary {
	summary := model.Summary{
		Count:        len(orders),
		TotalRevenue: decimal.Zero,
		StatusCounts: make(map[model.OrderStatus]int, len(model.AllStatuses)),
	}
	for _, o := range orders {
		summary.StatusCounts[o.Status]++
		if price, ok := ParsePrice(o.Price); ok {
			summary.TotalRevenue = summary.TotalRevenue.Add(price)
		}
	}
	return summary
}
