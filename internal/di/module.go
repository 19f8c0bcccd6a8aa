package di

import (
	"go.uber.org/fx"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/adapter/notify"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/app"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/config"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/logger"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/pkg/auth"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/handlers"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/router"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/storage/postgres"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(n notify.Notifier) app.Notifier { return n },
			func(f *app.CRMFacade) handlers.CRMFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
