package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/adapter/notify"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/app"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/config"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/storage/postgres"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		ChatGatewayAddress: "http://localhost",
		BotPIN:             "4242",
		TimeZone:           "UTC",
		ReportHour:         19,
		ReminderLead:       time.Minute,
		ReminderPoll:       time.Millisecond,
		ReportPoll:         time.Millisecond,
		DuplicateWindow:    10,
		StatusListLimit:    10,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.CRMFacade
	var engine *gin.Engine
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(test.NewOrderRepositoryStub())),
			fx.Replace(repository.SettingsRepository(test.NewSettingsRepositoryStub())),
			fx.Replace(repository.UserRepository(test.NewUserRepositoryStub())),
			fx.Replace(notify.Notifier(&test.NotifierStub{})),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	if facade == nil {
		t.Fatal("expected facade instance")
	}
	if engine == nil {
		t.Fatal("expected router instance")
	}
}
