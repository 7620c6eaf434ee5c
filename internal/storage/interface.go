package storage

import (
	"context"

	"github.com/julianstephens/habitual/internal/models"
)

// Provider persists the complete, ordered habit list as a single slot.
type Provider interface {
	// Lifecycle
	Init() error
	Open() error
	Close() error

	// Load returns the stored habits. A missing slot yields an empty list;
	// an unreadable one yields an empty list together with ErrCorrupt.
	Load(ctx context.Context) ([]models.Habit, error)
	// Save replaces the stored list with habits.
	Save(ctx context.Context, habits []models.Habit) error

	GetConfigPath() string
}
