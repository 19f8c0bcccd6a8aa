package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

func TestReportOrdersScopeRouting(t *testing.T) {
	repo := newMemOrderRepo()
	uc := NewReportUseCase(repo, time.UTC)
	orderUC := newTestOrderUseCase(repo)
	manager := model.Manager{ID: 7}

	yesterday := orderNow.AddDate(0, 0, -1)
	if _, err := orderUC.Create(context.Background(), "старый заказ / 100 / адрес / Иван / ", manager, 100, 200, yesterday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	today, err := orderUC.Create(context.Background(), "новый заказ / 200 / адрес / Иван / ", manager, 100, 201, orderNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("all", func(t *testing.T) {
		orders, err := uc.Orders(context.Background(), 100, ScopeAll, orderNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
	})

	t.Run("daily picks only the report day", func(t *testing.T) {
		orders, err := uc.Orders(context.Background(), 100, ScopeDaily, orderNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != today.ID {
			t.Fatalf("unexpected daily set: %+v", orders)
		}
	})

	t.Run("active picks orders touched on the report day", func(t *testing.T) {
		if _, err := orderUC.SetStatus(context.Background(), today.ID, model.OrderStatusPaid, orderNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Touching the older order today pulls it back into the active set.
		touched, err := orderUC.SetStatus(context.Background(), today.ID-1, model.OrderStatusInProgress, orderNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		orders, err := uc.Orders(context.Background(), 100, ScopeActive, orderNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != touched.ID {
			t.Fatalf("unexpected active set: %+v", orders)
		}
	})

	t.Run("unknown scope rejected", func(t *testing.T) {
		if _, err := uc.Orders(context.Background(), 100, ReportScope("weekly"), orderNow); !errors.Is(err, domainErrors.ErrInvalidField) {
			t.Fatalf("expected invalid field, got %v", err)
		}
	})
}

func TestSummarize(t *testing.T) {
	orders := []model.Order{
		{Status: model.OrderStatusNew, Price: "45000"},
		{Status: model.OrderStatusPaid, Price: "1 500 ₽"},
		{Status: model.OrderStatusPaid, Price: "договорная"},
	}

	summary := Summarize(orders)

	if summary.Count != 3 {
		t.Errorf("count = %d, want 3", summary.Count)
	}
	if want := decimal.NewFromInt(46500); !summary.TotalRevenue.Equal(want) {
		t.Errorf("revenue = %s, want %s", summary.TotalRevenue, want)
	}
	if summary.StatusCounts[model.OrderStatusPaid] != 2 || summary.StatusCounts[model.OrderStatusNew] != 1 {
		t.Errorf("unexpected status counts: %v", summary.StatusCounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Count != 0 || !summary.TotalRevenue.Equal(decimal.Zero) {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
