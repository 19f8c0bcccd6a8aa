package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/test"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

var facadeNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type facadeFixture struct {
	facade   *CRMFacade
	orders   *test.OrderRepositoryStub
	settings *test.SettingsRepositoryStub
	users    *test.UserRepositoryStub
	notifier *test.NotifierStub
}

func newFacadeFixture(t *testing.T) *facadeFixture {
	t.Helper()

	orders := test.NewOrderRepositoryStub()
	settings := test.NewSettingsRepositoryStub()
	users := test.NewUserRepositoryStub()
	notifier := &test.NotifierStub{}

	authUC, err := usecase.NewAuthUseCase(users, test.HasherStub{}, "4242")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	facade := NewCRMFacade(
		authUC,
		usecase.NewOrderUseCase(orders, usecase.LifecycleConfig{Location: time.UTC, MaxCommentLength: 500}),
		usecase.NewReportUseCase(orders, time.UTC),
		usecase.NewSettingsUseCase(settings),
		notifier,
		time.UTC,
	)
	facade.now = func() time.Time { return facadeNow }

	return &facadeFixture{
		facade:   facade,
		orders:   orders,
		settings: settings,
		users:    users,
		notifier: notifier,
	}
}

func (f *facadeFixture) createOrder(t *testing.T, text string, messageID int64) *model.Order {
	t.Helper()
	order, err := f.facade.CreateOrder(context.Background(), text, model.Manager{ID: 7, Name: "Мария"}, 100, messageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return order
}

func TestFacadeAuthFlow(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	if err := f.facade.SubmitPIN(ctx, 7, "0000"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := f.facade.SubmitPIN(ctx, 7, "4242"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := f.facade.IsAuthorized(ctx, 7); !ok {
		t.Fatal("user must be authorized after correct PIN")
	}
}

func TestFacadeCreateOrderStampsClock(t *testing.T) {
	f := newFacadeFixture(t)

	order := f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / завтра 15:00", 200)

	if !order.CreatedAt.Equal(facadeNow) {
		t.Errorf("created at = %v, want injected clock", order.CreatedAt)
	}
	want := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	if order.ReminderAt == nil || !order.ReminderAt.Equal(want) {
		t.Errorf("reminder = %v, want %v", order.ReminderAt, want)
	}
}

func TestFacadeCreateOrderRejectsOversizedComment(t *testing.T) {
	f := newFacadeFixture(t)

	text := "iPhone 15 / 45000 / Ленина 1 / Иван / " + test.RandomASCIIString(501, 501)
	_, err := f.facade.CreateOrder(context.Background(), text, model.Manager{ID: 7}, 100, 200)
	pe, ok := domainErrors.IsParseError(err)
	if !ok || pe.Reason != domainErrors.ParseInvalidField {
		t.Fatalf("expected invalid_field parse error, got %v", err)
	}
}

func TestFacadeDeliverReminderOnce(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / завтра 15:00 уточнить цвет", 200)

	delivered, err := f.facade.DeliverReminder(ctx, order.ID)
	if err != nil || !delivered {
		t.Fatalf("first delivery: %v %v", delivered, err)
	}

	messages := f.notifier.SentMessages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].ChatID != 100 {
		t.Errorf("chat = %d, want 100", messages[0].ChatID)
	}
	for _, fragment := range []string{"#1", "iPhone 15", "Иван +79001234567", "уточнить цвет"} {
		if !strings.Contains(messages[0].Text, fragment) {
			t.Errorf("reminder text misses %q: %q", fragment, messages[0].Text)
		}
	}

	delivered, err = f.facade.DeliverReminder(ctx, order.ID)
	if err != nil || delivered {
		t.Fatalf("repeat delivery must be a no-op: %v %v", delivered, err)
	}
	if len(f.notifier.SentMessages()) != 1 {
		t.Fatal("repeat delivery must not send")
	}
}

func TestFacadeDeliverReminderFailureReleasesClaim(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / завтра 15:00", 200)

	f.notifier.MessageErr = errors.New("gateway down")
	if _, err := f.facade.DeliverReminder(ctx, order.ID); err == nil {
		t.Fatal("expected delivery error")
	}

	due, err := f.facade.DueReminders(ctx, facadeNow.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 {
		t.Fatal("failed delivery must keep the reminder due")
	}

	f.notifier.MessageErr = nil
	if delivered, err := f.facade.DeliverReminder(ctx, order.ID); err != nil || !delivered {
		t.Fatalf("retry after failure: %v %v", delivered, err)
	}
}

func TestFacadeDeliverDailyReport(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	if err := f.facade.SetDailyReportEnabled(ctx, 100, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.facade.SetReportChat(ctx, 100, 555); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / ", 200)

	target, err := f.facade.ChatSettings(ctx, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delivered, err := f.facade.DeliverDailyReport(ctx, *target, facadeNow)
	if err != nil || !delivered {
		t.Fatalf("first report: %v %v", delivered, err)
	}

	messages := f.notifier.SentMessages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].ChatID != 555 {
		t.Errorf("report must go to the configured destination, got %d", messages[0].ChatID)
	}
	if !strings.Contains(messages[0].Text, "Отчёт за 10.03.2026") {
		t.Errorf("unexpected report text: %q", messages[0].Text)
	}

	delivered, err = f.facade.DeliverDailyReport(ctx, *target, facadeNow)
	if err != nil || delivered {
		t.Fatalf("same day must not report twice: %v %v", delivered, err)
	}
}

func TestFacadeReportTargets(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	if err := f.facade.SetDailyReportEnabled(ctx, 100, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.facade.SetDailyReportEnabled(ctx, 200, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	targets, err := f.facade.ReportTargets(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 1 || targets[0].ChatID != 100 {
		t.Fatalf("unexpected targets: %+v", targets)
	}
}

func TestFacadeBuildReport(t *testing.T) {
	f := newFacadeFixture(t)

	f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / ", 200)

	doc, err := f.facade.BuildReport(context.Background(), 100, usecase.ScopeDaily, report.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.MIME != "text/csv" {
		t.Errorf("mime = %q", doc.MIME)
	}
	if !strings.Contains(string(doc.Content), "iPhone 15") {
		t.Errorf("order missing from report: %q", doc.Content)
	}
}

func TestFacadeSendReportDocument(t *testing.T) {
	f := newFacadeFixture(t)

	f.createOrder(t, "iPhone 15 / 45000 / Ленина 1 / 89001234567 Иван / ", 200)

	if err := f.facade.SendReportDocument(context.Background(), 100, usecase.ScopeAll, report.FormatCSV); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs := f.notifier.SentDocuments()
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ChatID != 100 || docs[0].MIME != "text/csv" {
		t.Errorf("unexpected document: %+v", docs[0])
	}
	if docs[0].Caption == "" || docs[0].Filename == "" {
		t.Errorf("document must carry caption and filename: %+v", docs[0])
	}
}
