package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
)

var (
	// ErrCorrupt is returned when the stored slot cannot be decoded. The
	// accompanying habit list is empty, never nil.
	ErrCorrupt = errors.New("stored habits are corrupt")
	// ErrNotInitialized is returned when opening storage that was never created.
	ErrNotInitialized = errors.New("storage not initialized, run 'habitual init' first")
)

// DecodeHabits parses the serialized habit list. Legacy boolean completion
// values are normalized to counts and older records are repaired.
func DecodeHabits(data []byte) ([]models.Habit, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return []models.Habit{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if habits == nil {
		return []models.Habit{}, nil
	}
	for i := range habits {
		habits[i].Normalize()
	}
	return habits, nil
}

// EncodeHabits serializes the habit list in its persisted wire shape.
func EncodeHabits(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode habits: %w", err)
	}
	return data, nil
}
