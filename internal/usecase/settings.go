package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
)

// SettingsUseCase manages per-chat daily report configuration.
type SettingsUseCase struct {
	settings repository.SettingsRepository
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get returns chat settings, zero-valued when the chat has none yet.
func (u *SettingsUseCase) Get(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	settings, err := u.settings.Get(ctx, chatID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return &model.ChatSettings{ChatID: chatID}, nil
	}
	return settings, err
}

// SetDailyReportEnabled toggles the daily report for the chat.
func (u *SettingsUseCase) SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error {
	return u.settings.SetDailyReportEnabled(ctx, chatID, enabled)
}

// SetReportChat routes reports of chatID to reportChatID.
func (u *SettingsUseCase) SetReportChat(ctx context.Context, chatID, reportChatID int64) error {
	return u.settings.SetReportChat(ctx, chatID, reportChatID)
}

// ReportTargets lists chats with the daily report enabled.
func (u *SettingsUseCase) ReportTargets(ctx context.Context) ([]model.ChatSettings, error) {
	return u.settings.ListReportEnabled(ctx)
}

// ClaimDailyReport atomically marks day as reported for the chat and runs
// dispatch; dispatch failure rolls the claim back.
func (u *SettingsUseCase) ClaimDailyReport(ctx context.Context, chatID int64, day time.Time, dispatch func() error) (bool, error) {
	return u.settings.ClaimDailyReport(ctx, chatID, day, dispatch)
}
