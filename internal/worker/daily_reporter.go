package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// ReportingFacade exposes the subset of application functionality required by
// the daily reporter.
type ReportingFacade interface {
	ReportTargets(ctx context.Context) ([]model.ChatSettings, error)
	// DeliverDailyReport claims the report slot for day and sends the report in
	// one transaction. Returns false when the chat was already reported today.
	DeliverDailyReport(ctx context.Context, target model.ChatSettings, day time.Time) (bool, error)
}

// DailyReporter sends the once-a-day summary to every chat that enabled it.
type DailyReporter struct {
	facade       ReportingFacade
	pollInterval time.Duration
	hour         int
	minute       int
	location     *time.Location
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDailyReporter constructs the report polling worker. hour and minute name
// the earliest local time the report may go out.
func NewDailyReporter(facade ReportingFacade, pollInterval time.Duration, hour, minute int, location *time.Location, logger *slog.Logger) *DailyReporter {
	return &DailyReporter{
		facade:       facade,
		pollInterval: pollInterval,
		hour:         hour,
		minute:       minute,
		location:     location,
		logger:       logger,
	}
}

// Start launches background polling.
func (r *DailyReporter) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the polling loop to finish.
func (r *DailyReporter) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *DailyReporter) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx, time.Now())
		}
	}
}

func (r *DailyReporter) poll(ctx context.Context, now time.Time) {
	local := now.In(r.location)
	trigger := time.Date(local.Year(), local.Month(), local.Day(), r.hour, r.minute, 0, 0, r.location)
	if local.Before(trigger) {
		return
	}
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.location)

	targets, err := r.facade.ReportTargets(ctx)
	if err != nil {
		r.logger.Error("fetch report targets failed", slog.String("error", err.Error()))
		return
	}

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return
		default:
		}

		delivered, err := r.facade.DeliverDailyReport(ctx, target, day)
		if err != nil {
			r.logger.Error("daily report delivery failed",
				slog.Int64("chat_id", target.ChatID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !delivered {
			continue
		}
		r.logger.Info("daily report delivered",
			slog.Int64("chat_id", target.ChatID),
			slog.Int64("destination", target.Destination()),
		)
	}
}
