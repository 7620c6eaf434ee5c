package reminders

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// Gateway is the notification system holding scheduled triggers.
type Gateway interface {
	Schedule(ctx context.Context, t Trigger) error
	Cancel(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]string, error)
	RequestPermission(ctx context.Context) (bool, error)
}

// Report summarizes one reconciliation pass.
type Report struct {
	Scheduled int
	Cancelled int
	Failed    int
}

func (r *Report) add(o Report) {
	r.Scheduled += o.Scheduled
	r.Cancelled += o.Cancelled
	r.Failed += o.Failed
}

// Reconciler keeps the gateway's triggers equal to the ones derived from the
// current habits. Gateway failures are logged per trigger and never returned.
type Reconciler struct {
	gateway Gateway
	log     *log.Logger
}

func NewReconciler(gateway Gateway) *Reconciler {
	return &Reconciler{gateway: gateway}
}

// WithLogger routes the reconciler's messages to l instead of the global logger.
func (r *Reconciler) WithLogger(l *log.Logger) *Reconciler {
	r.log = l
	return r
}

// Reschedule cancels everything in the habit's namespace and schedules its
// triggers again. Habits without reminders are left alone.
func (r *Reconciler) Reschedule(ctx context.Context, h models.Habit) Report {
	if !h.HasReminders() {
		return Report{}
	}

	report := r.CancelHabit(ctx, h.ID)

	triggers, errs := Triggers(h)
	for _, err := range errs {
		r.warn("Skipping reminder", "habit", h.ID, "error", err)
		report.Failed++
	}
	for _, t := range triggers {
		if err := r.gateway.Schedule(ctx, t); err != nil {
			r.warn("Failed to schedule notification", "id", t.ID, "error", err)
			report.Failed++
			continue
		}
		report.Scheduled++
	}
	r.debug("Scheduled notifications for habit", "habit", h.Name, "count", report.Scheduled)
	return report
}

// CancelHabit cancels every scheduled trigger whose id lies in the habit's
// namespace.
func (r *Reconciler) CancelHabit(ctx context.Context, habitID string) Report {
	var report Report

	ids, err := r.gateway.ListAll(ctx)
	if err != nil {
		r.warn("Failed to list scheduled notifications", "habit", habitID, "error", err)
		report.Failed++
		return report
	}

	prefix := Namespace(habitID)
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if err := r.gateway.Cancel(ctx, id); err != nil {
			r.warn("Failed to cancel notification", "id", id, "error", err)
			report.Failed++
			continue
		}
		report.Cancelled++
	}
	if report.Cancelled > 0 {
		r.debug("Cancelled notifications for habit", "habit", habitID, "count", report.Cancelled)
	}
	return report
}

// RescheduleAll reconciles every habit with reminders once. It runs at
// startup to restore triggers the platform may have dropped.
func (r *Reconciler) RescheduleAll(ctx context.Context, habits []models.Habit) Report {
	var total Report
	for _, h := range habits {
		if !h.HasReminders() {
			continue
		}
		total.add(r.Reschedule(ctx, h))
	}
	return total
}

func (r *Reconciler) warn(msg string, keyvals ...interface{}) {
	if r.log != nil {
		r.log.Warn(msg, keyvals...)
		return
	}
	logger.Warn(msg, keyvals...)
}

func (r *Reconciler) debug(msg string, keyvals ...interface{}) {
	if r.log != nil {
		r.log.Debug(msg, keyvals...)
		return
	}
	logger.Debug(msg, keyvals...)
}
