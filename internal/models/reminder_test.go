package models

import (
	"reflect"
	"testing"
)

func TestNewReminder(t *testing.T) {
	r, err := NewReminder("", []string{"Mon", "Wed", "Mon"})
	if err != nil {
		t.Fatalf("NewReminder() error = %v", err)
	}
	if r.Time != "10:00 AM" {
		t.Errorf("Time = %q, want default", r.Time)
	}
	if !reflect.DeepEqual(r.Days, []string{"Mon", "Wed"}) {
		t.Errorf("Days = %v", r.Days)
	}

	if _, err := NewReminder("25:00 AM", nil); err == nil {
		t.Error("expected error for invalid time")
	}
	if _, err := NewReminder("9:00 AM", []string{"Funday"}); err == nil {
		t.Error("expected error for unknown weekday")
	}
}

func TestReminder_ToggleDay(t *testing.T) {
	r := Reminder{ID: "r1", Time: "8:00 PM", Days: []string{"Fri", "Mon"}}

	r, err := r.ToggleDay("Sun")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Days, []string{"Fri", "Mon", "Sun"}) {
		t.Errorf("after add: %v", r.Days)
	}

	r, err = r.ToggleDay("Fri")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Days, []string{"Mon", "Sun"}) {
		t.Errorf("after remove: %v", r.Days)
	}

	if _, err := r.ToggleDay("mon"); err == nil {
		t.Error("expected error for lowercase abbreviation")
	}
}

func TestFormatReminderTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, "12:00 AM"},
		{12, 30, "12:30 PM"},
		{13, 15, "1:15 PM"},
		{11, 45, "11:45 AM"},
		{9, 5, "9:05 AM"},
	}
	for _, tt := range tests {
		if got := FormatReminderTime(tt.hour, tt.minute); got != tt.want {
			t.Errorf("FormatReminderTime(%d, %d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}
