package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// ReminderFacade exposes the subset of application functionality required by
// the reminder dispatcher.
type ReminderFacade interface {
	DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error)
	// DeliverReminder claims the reminder and sends it in one transaction.
	// Returns false when another poll already claimed it.
	DeliverReminder(ctx context.Context, orderID int64) (bool, error)
}

// ReminderDispatcher polls for due reminders and delivers each at most once.
type ReminderDispatcher struct {
	facade       ReminderFacade
	pollInterval time.Duration
	lead         time.Duration
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReminderDispatcher constructs the reminder polling worker. lead shifts
// delivery ahead of the stated time so the manager gets warned before the
// moment, not at it.
func NewReminderDispatcher(facade ReminderFacade, pollInterval, lead time.Duration, logger *slog.Logger) *ReminderDispatcher {
	return &ReminderDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		lead:         lead,
		logger:       logger,
	}
}

// Start launches background polling.
func (d *ReminderDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.run(runCtx)
}

// Stop waits for the polling loop to finish.
func (d *ReminderDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *ReminderDispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.poll(ctx, time.Now())
		}
	}
}

func (d *ReminderDispatcher) poll(ctx context.Context, now time.Time) {
	due, err := d.facade.DueReminders(ctx, now.Add(d.lead))
	if err != nil {
		d.logger.Error("fetch due reminders failed", slog.String("error", err.Error()))
		return
	}

	for _, order := range due {
		select {
		case <-ctx.Done():
			return
		default:
		}

		dispatchID := uuid.NewString()
		delivered, err := d.facade.DeliverReminder(ctx, order.ID)
		if err != nil {
			// Claim rolled back, the next poll retries this reminder.
			d.logger.Error("reminder delivery failed",
				slog.String("dispatch_id", dispatchID),
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !delivered {
			continue
		}
		d.logger.Info("reminder delivered",
			slog.String("dispatch_id", dispatchID),
			slog.Int64("order_id", order.ID),
			slog.Int64("chat_id", order.ChatID),
		)
	}
}
