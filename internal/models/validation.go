package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FieldID                = "id"
	FieldName              = "name"
	FieldColor             = "color"
	FieldIcon              = "icon"
	FieldCompletionsPerDay = "completionsPerDay"
	FieldCompletions       = "completions"
	FieldReminders         = "reminders"
)

// ValidationError reports a form value that prevents a habit from being saved.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseCompletionsPerDay coerces the raw form text into a positive target.
// Empty text means the default of 1; anything else that is not a positive
// integer is rejected so the form can revert the field to 1.
func ParseCompletionsPerDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1, &ValidationError{Field: FieldCompletionsPerDay, Message: fmt.Sprintf("%q is not a whole number", s)}
	}
	if n < 1 {
		return 1, &ValidationError{Field: FieldCompletionsPerDay, Message: "must be at least 1"}
	}
	return n, nil
}
