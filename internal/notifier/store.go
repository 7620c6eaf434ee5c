package notifier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/reminders"
	"github.com/julianstephens/habitual/migrations"
)

const permissionKey = "permission"

// Store is the local notification system: it holds scheduled weekly
// triggers in SQLite until the dispatcher delivers them.
type Store struct {
	path string
	db   *sql.DB
}

var _ reminders.Gateway = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open creates the database when needed and applies pending migrations.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create notification directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open notification database: %w", err)
	}

	subFS, err := fs.Sub(migrations.FS, "notify")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to access notify migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS, migration.DialectSQLite)
	if _, err := runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "store", "notify")
	}); err != nil {
		db.Close()
		return fmt.Errorf("failed to run notify migrations: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ready() error {
	if !Initialized() {
		return ErrNotInitialized
	}
	return s.Open()
}

// Schedule stores t, replacing any trigger with the same id.
func (s *Store) Schedule(ctx context.Context, t reminders.Trigger) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scheduled_notifications (id, habit_id, reminder_id, day, title, body, weekday, hour, minute, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, body = excluded.body,
			weekday = excluded.weekday, hour = excluded.hour, minute = excluded.minute
	`, t.ID, t.HabitID, t.ReminderID, t.Day, t.Title, t.Body, t.Weekday, t.Hour, t.Minute,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", t.ID, err)
	}
	return nil
}

// Cancel removes the trigger with the given id. Unknown ids are not an error.
func (s *Store) Cancel(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scheduled_notifications WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to cancel %s: %w", id, err)
	}
	return nil
}

// ListAll returns the ids of every scheduled trigger.
func (s *Store) ListAll(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM scheduled_notifications ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RequestPermission records that the user allowed notifications. Desktop
// delivery needs no OS prompt, so permission is always granted.
func (s *Store) RequestPermission(ctx context.Context) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifier_settings (key, value) VALUES (?, 'granted')
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, permissionKey)
	if err != nil {
		return false, fmt.Errorf("failed to record permission: %w", err)
	}
	return true, nil
}

// PermissionGranted reports whether RequestPermission has succeeded before.
func (s *Store) PermissionGranted(ctx context.Context) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM notifier_settings WHERE key = ?", permissionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "granted", nil
}

// Triggers returns every scheduled trigger ordered by id.
func (s *Store) Triggers(ctx context.Context) ([]reminders.Trigger, error) {
	return s.query(ctx, `SELECT id, habit_id, reminder_id, day, title, body, weekday, hour, minute
		FROM scheduled_notifications ORDER BY id`)
}

// Due returns the triggers firing in the minute containing now that have
// not fired during that minute yet.
func (s *Store) Due(ctx context.Context, now time.Time) ([]reminders.Trigger, error) {
	minute := now.Truncate(time.Minute).UTC().Format(time.RFC3339)
	return s.query(ctx, `SELECT id, habit_id, reminder_id, day, title, body, weekday, hour, minute
		FROM scheduled_notifications
		WHERE weekday = ? AND hour = ? AND minute = ?
			AND (last_fired_at IS NULL OR last_fired_at < ?)
		ORDER BY id`, int(now.Weekday())+1, now.Hour(), now.Minute(), minute)
}

// MarkFired records that the trigger was delivered at.
func (s *Store) MarkFired(ctx context.Context, id string, at time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "UPDATE scheduled_notifications SET last_fired_at = ? WHERE id = ?",
		at.UTC().Format(time.RFC3339), id)
	return err
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]reminders.Trigger, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var out []reminders.Trigger
	for rows.Next() {
		var t reminders.Trigger
		if err := rows.Scan(&t.ID, &t.HabitID, &t.ReminderID, &t.Day, &t.Title, &t.Body, &t.Weekday, &t.Hour, &t.Minute); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
