package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
)

// Habit represents a tracked practice and its per-day completion counts
type Habit struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Description       string      `json:"description,omitempty" yaml:"description,omitempty"`
	Color             string      `json:"color" yaml:"color"`
	Icon              string      `json:"icon" yaml:"icon"`
	CompletionsPerDay int         `json:"completionsPerDay" yaml:"completions_per_day"`
	CreatedAt         time.Time   `json:"createdAt" yaml:"created_at"`
	Reminders         []Reminder  `json:"reminders" yaml:"reminders"`
	Completions       Completions `json:"completions" yaml:"completions"`
}

// HabitDraft carries the raw values of the new/edit habit form.
//
// CompletionsPerDay is the unparsed form text; empty means the default of 1.
// A nil Reminders or Completions leaves the existing value untouched on edit.
type HabitDraft struct {
	Name              string
	Description       string
	Color             string
	Icon              string
	CompletionsPerDay string
	Reminders         []Reminder
	Completions       Completions
}

// NewHabit validates a draft and builds a new habit created at now.
func NewHabit(draft HabitDraft, now time.Time) (Habit, error) {
	h := Habit{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		Reminders:   []Reminder{},
		Completions: Completions{},
	}
	if err := h.apply(draft); err != nil {
		return Habit{}, err
	}
	return h, nil
}

// ApplyEdit returns a copy of the habit with the draft applied. ID and
// CreatedAt are always preserved.
func (h Habit) ApplyEdit(draft HabitDraft) (Habit, error) {
	edited := h.Clone()
	if err := edited.apply(draft); err != nil {
		return Habit{}, err
	}
	return edited, nil
}

func (h *Habit) apply(draft HabitDraft) error {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return &ValidationError{Field: FieldName, Message: "habit name cannot be empty"}
	}

	perDay, err := ParseCompletionsPerDay(draft.CompletionsPerDay)
	if err != nil {
		return err
	}

	color := draft.Color
	if color == "" {
		color = constants.Palette[constants.DefaultColorIndex]
	}
	if !slices.Contains(constants.Palette, strings.ToLower(color)) {
		return &ValidationError{Field: FieldColor, Message: fmt.Sprintf("%q is not a palette color", color)}
	}

	icon := draft.Icon
	if icon == "" {
		icon = constants.Icons[0]
	}
	if !slices.Contains(constants.Icons, icon) {
		return &ValidationError{Field: FieldIcon, Message: fmt.Sprintf("unknown icon %q", icon)}
	}

	if draft.Reminders != nil {
		for i := range draft.Reminders {
			if err := draft.Reminders[i].Validate(); err != nil {
				return err
			}
		}
		h.Reminders = cloneReminders(draft.Reminders)
	}
	if draft.Completions != nil {
		h.Completions = draft.Completions.Clone()
	}

	h.Name = name
	h.Description = strings.TrimSpace(draft.Description)
	h.Color = strings.ToLower(color)
	h.Icon = icon
	h.CompletionsPerDay = perDay
	return nil
}

// Validate checks the invariants of a stored habit record.
func (h *Habit) Validate() error {
	if h.ID == "" {
		return &ValidationError{Field: FieldID, Message: "habit id cannot be empty"}
	}
	if strings.TrimSpace(h.Name) == "" {
		return &ValidationError{Field: FieldName, Message: "habit name cannot be empty"}
	}
	if h.CompletionsPerDay < 1 {
		return &ValidationError{Field: FieldCompletionsPerDay, Message: "must be at least 1"}
	}
	for key, count := range h.Completions {
		if _, err := time.Parse(constants.DateFormat, key); err != nil {
			return &ValidationError{Field: FieldCompletions, Message: fmt.Sprintf("invalid date key %q", key)}
		}
		if count < 1 {
			return &ValidationError{Field: FieldCompletions, Message: fmt.Sprintf("non-positive count stored for %s", key)}
		}
	}
	for i := range h.Reminders {
		if err := h.Reminders[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (h Habit) Clone() Habit {
	c := h
	c.Reminders = cloneReminders(h.Reminders)
	c.Completions = h.Completions.Clone()
	return c
}

// HasReminders reports whether the habit carries any reminder at all.
func (h *Habit) HasReminders() bool {
	return len(h.Reminders) > 0
}

// Reminder returns the reminder with the given id.
func (h *Habit) Reminder(id string) (Reminder, bool) {
	for _, r := range h.Reminders {
		if r.ID == id {
			return r, true
		}
	}
	return Reminder{}, false
}

func cloneReminders(in []Reminder) []Reminder {
	out := make([]Reminder, len(in))
	for i, r := range in {
		out[i] = Reminder{ID: r.ID, Time: r.Time, Days: slices.Clone(r.Days)}
		if out[i].Days == nil {
			out[i].Days = []string{}
		}
	}
	return out
}

// Normalize repairs records written by older versions: a missing target
// becomes 1 and nil collections become empty.
func (h *Habit) Normalize() {
	if h.CompletionsPerDay < 1 {
		h.CompletionsPerDay = 1
	}
	if h.Reminders == nil {
		h.Reminders = []Reminder{}
	}
	for i := range h.Reminders {
		if h.Reminders[i].Days == nil {
			h.Reminders[i].Days = []string{}
		}
	}
	if h.Completions == nil {
		h.Completions = Completions{}
	}
}
