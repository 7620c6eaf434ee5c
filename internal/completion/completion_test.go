package completion

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/julianstephens/habitual/internal/models"
)

func newHabit(perDay int) models.Habit {
	return models.Habit{
		ID:                "h1",
		Name:              "Pushups",
		CompletionsPerDay: perDay,
		Completions:       models.Completions{},
	}
}

func TestAdvance_Sequence(t *testing.T) {
	h := newHabit(3)
	key := "2024-06-01"

	want := []int{1, 2, 3, 0, 1}
	for i, w := range want {
		h = Advance(h, key)
		got, present := h.Completions[key]
		if w == 0 {
			if present {
				t.Fatalf("step %d: key should be absent, got %d", i+1, got)
			}
			continue
		}
		if got != w {
			t.Fatalf("step %d: count = %d, want %d", i+1, got, w)
		}
	}
}

func TestAdvance_CycleReturnsToOriginal(t *testing.T) {
	for n := 1; n <= 6; n++ {
		h := newHabit(n)
		h.Completions["2024-05-31"] = 1
		key := "2024-06-01"
		for i := 0; i < n+1; i++ {
			h = Advance(h, key)
		}
		if _, ok := h.Completions[key]; ok {
			t.Errorf("n=%d: key present after full cycle", n)
		}
		if h.Completions["2024-05-31"] != 1 || len(h.Completions) != 1 {
			t.Errorf("n=%d: unrelated keys changed: %v", n, h.Completions)
		}
	}
}

func TestAdvance_DoesNotMutateInput(t *testing.T) {
	h := newHabit(2)
	_ = Advance(h, "2024-06-01")
	if len(h.Completions) != 0 {
		t.Errorf("input mutated: %v", h.Completions)
	}
}

func TestAdvance_HistoryAboveLoweredTarget(t *testing.T) {
	h := newHabit(1)
	h.Completions["2024-06-01"] = 3 // recorded when the target was 3

	if !IsComplete(h, "2024-06-01") {
		t.Error("count above target must be complete")
	}
	h = Advance(h, "2024-06-01")
	if _, ok := h.Completions["2024-06-01"]; ok {
		t.Errorf("(3+1) mod 2 should clear the day, got %v", h.Completions)
	}
}

func TestIsComplete_LegacyAndNumeric(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		perDay int
		want   bool
	}{
		{"legacy true single", `true`, 1, true},
		{"legacy true multi", `true`, 2, false},
		{"legacy false", `false`, 1, false},
		{"numeric below", `1`, 2, false},
		{"numeric equal", `2`, 2, true},
		{"numeric above", `4`, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c models.Completions
			if err := json.Unmarshal([]byte(`{"2024-06-01": `+tt.raw+`}`), &c); err != nil {
				t.Fatal(err)
			}
			h := newHabit(tt.perDay)
			h.Completions = c
			if got := IsComplete(h, "2024-06-01"); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}

	if IsComplete(newHabit(1), "2024-06-02") {
		t.Error("absent day must not be complete")
	}
}

func TestStreak(t *testing.T) {
	h := newHabit(1)
	for _, k := range []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-05-30"} {
		h.Completions[k] = 1
	}
	today := time.Date(2024, 6, 4, 15, 0, 0, 0, time.UTC)

	if got := Streak(h, today); got != 3 {
		t.Errorf("Streak() = %d, want 3", got)
	}
	h.Completions["2024-06-04"] = 1
	if got := Streak(h, today); got != 4 {
		t.Errorf("Streak() with today = %d, want 4", got)
	}
	if got := Streak(newHabit(1), today); got != 0 {
		t.Errorf("Streak() empty = %d", got)
	}
}

func TestStreakAcrossMidnightDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	// 2018-11-04 started at 01:00 local time; that day was never done.
	h := newHabit(1)
	for _, k := range []string{"2018-11-02", "2018-11-03", "2018-11-05"} {
		h.Completions[k] = 1
	}
	today := time.Date(2018, 11, 5, 9, 0, 0, 0, loc)

	if got := Streak(h, today); got != 1 {
		t.Errorf("Streak() = %d, want 1", got)
	}
	h.Completions["2018-11-04"] = 1
	if got := Streak(h, today); got != 4 {
		t.Errorf("Streak() with gap day done = %d, want 4", got)
	}
}
