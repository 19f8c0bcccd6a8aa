package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/config"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewCRMFacade,
		newHTTPServer,
		newReminderDispatcher,
		newDailyReporter,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade   *CRMFacade
	Config   *config.Config
	Location *time.Location
	Logger   *slog.Logger
}

func newReminderDispatcher(p workerParams) *worker.ReminderDispatcher {
	return worker.NewReminderDispatcher(
		p.Facade,
		p.Config.ReminderPoll,
		p.Config.ReminderLead,
		p.Logger,
	)
}

func newDailyReporter(p workerParams) *worker.DailyReporter {
	return worker.NewDailyReporter(
		p.Facade,
		p.Config.ReportPoll,
		p.Config.ReportHour,
		p.Config.ReportMinute,
		p.Location,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Reminders  *worker.ReminderDispatcher
	Reports    *worker.DailyReporter
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting nano-crm", slog.String("addr", p.Server.Addr))
			p.Reminders.Start(ctx)
			p.Reports.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Reminders.Stop()
			p.Reports.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("nano-crm stopped")
			return nil
		},
	})
}
