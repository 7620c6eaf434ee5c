package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/reminders"
)

// Sender delivers a single notification.
type Sender interface {
	Notify(ctx context.Context, title, body string) error
}

// DueSource is the part of Store the dispatcher reads from.
type DueSource interface {
	Due(ctx context.Context, now time.Time) ([]reminders.Trigger, error)
	MarkFired(ctx context.Context, id string, at time.Time) error
}

// Dispatcher fires stored triggers whose weekday and time match the clock.
type Dispatcher struct {
	source     DueSource
	sender     Sender
	maxRetries int
	retryDelay time.Duration
}

func NewDispatcher(source DueSource, sender Sender) *Dispatcher {
	return &Dispatcher{
		source:     source,
		sender:     sender,
		maxRetries: constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// DispatchResult lists the triggers delivered and the ones given up on.
type DispatchResult struct {
	Sent   []reminders.Trigger
	Failed []reminders.Trigger
}

// DispatchDue delivers every trigger due at now. A trigger that still fails
// after the retries is logged and skipped; only reading the due set can fail
// the whole pass.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) (DispatchResult, error) {
	var result DispatchResult

	due, err := d.source.Due(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to read due notifications: %w", err)
	}

	for _, t := range due {
		if err := d.deliver(ctx, t); err != nil {
			logger.Warn("Failed to deliver notification", "id", t.ID, "error", err)
			result.Failed = append(result.Failed, t)
			continue
		}
		if err := d.source.MarkFired(ctx, t.ID, now); err != nil {
			logger.Warn("Failed to record delivery", "id", t.ID, "error", err)
		}
		result.Sent = append(result.Sent, t)
	}
	return result, nil
}

func (d *Dispatcher) deliver(ctx context.Context, t reminders.Trigger) error {
	var err error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.retryDelay):
			}
		}
		if err = d.sender.Notify(ctx, t.Title, t.Body); err == nil {
			return nil
		}
		if errors.Is(err, ErrTrayNotRunning) || errors.Is(err, ErrNotInitialized) {
			return err
		}
	}
	return err
}
