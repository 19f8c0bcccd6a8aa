package repository

import (
	"context"
	"time"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// SettingsRepository describes persistence of per-chat report settings.
type SettingsRepository interface {
	Get(ctx context.Context, chatID int64) (*model.ChatSettings, error)
	SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error
	SetReportChat(ctx context.Context, chatID, reportChatID int64) error
	ListReportEnabled(ctx context.Context) ([]model.ChatSettings, error)
	// ClaimDailyReport atomically advances last_report_date to day and runs
	// dispatch inside the same transaction; a dispatch error rolls the claim
	// back. Returns false when the report for day was already produced.
	ClaimDailyReport(ctx context.Context, chatID int64, day time.Time, dispatch func() error) (bool, error)
}
