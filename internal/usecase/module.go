package usecase

import (
	"time"

	"go.uber.org/fx"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/config"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newLifecycleConfig,
	NewOrderUseCase,
	NewReportUseCase,
	NewSettingsUseCase,
	newAuthUseCase,
)

func newLifecycleConfig(cfg *config.Config, loc *time.Location) LifecycleConfig {
	return LifecycleConfig{
		Location:         loc,
		DuplicateWindow:  cfg.DuplicateWindow,
		StatusListLimit:  cfg.StatusListLimit,
		MaxCommentLength: cfg.MaxCommentLength,
		DailyOrderLimit:  cfg.DailyOrderLimit,
	}
}

func newAuthUseCase(users repository.UserRepository, hasher auth.PinHasher, cfg *config.Config) (*AuthUseCase, error) {
	return NewAuthUseCase(users, hasher, cfg.BotPIN)
}
