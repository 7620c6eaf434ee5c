package calendar

import (
	"math"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Day is one square of the rolling heatmap.
type Day struct {
	Date      time.Time
	DateKey   string
	Count     int
	Intensity float64
	Color     string
}

// Week is seven consecutive days, oldest first.
type Week [constants.DaysPerWeek]Day

// RollingWindow returns 52 weeks of days ending with today; the first day is
// 363 days before today.
func RollingWindow(h models.Habit, today time.Time) []Week {
	total := constants.HeatmapWeeks * constants.DaysPerWeek
	first := today.Day() - (total - 1)

	weeks := make([]Week, constants.HeatmapWeeks)
	for i := 0; i < total; i++ {
		// Noon, because midnight is skipped on some DST transitions.
		date := time.Date(today.Year(), today.Month(), first+i, 12, 0, 0, 0, today.Location())
		key := completion.DateKey(date)
		count := completion.Count(h, key)
		weeks[i/constants.DaysPerWeek][i%constants.DaysPerWeek] = Day{
			Date:      date,
			DateKey:   key,
			Count:     count,
			Intensity: Intensity(count, h.CompletionsPerDay),
			Color:     Interpolate(h.Color, count, h.CompletionsPerDay),
		}
	}
	return weeks
}

// Intensity is count/target clamped to [0, 1].
func Intensity(count, target int) float64 {
	if target < 1 {
		target = 1
	}
	if count <= 0 {
		return 0
	}
	if count >= target {
		return 1
	}
	return float64(count) / float64(target)
}

// Interpolate blends each RGB channel from the neutral color toward the habit
// color by count/target, rounding to the nearest integer. A zero count is
// always exactly the neutral color and a full count exactly the habit color.
func Interpolate(habitColor string, count, target int) string {
	t := Intensity(count, target)
	if t == 0 {
		return constants.NeutralColor
	}
	hc, err := colorful.Hex(habitColor)
	if err != nil {
		return constants.NeutralColor
	}
	if t == 1 {
		return strings.ToLower(habitColor)
	}
	neutral, _ := colorful.Hex(constants.NeutralColor)

	nr, ng, nb := neutral.RGB255()
	hr, hg, hb := hc.RGB255()
	return colorful.Color{
		R: blend(nr, hr, t),
		G: blend(ng, hg, t),
		B: blend(nb, hb, t),
	}.Hex()
}

func blend(from, to uint8, t float64) float64 {
	v := math.Round(float64(from) + (float64(to)-float64(from))*t)
	return v / 255.0
}
