package features

import (
	"math"
	"sort"
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// ProductiveCategories is the canonical productive-like bucket. It is shared
// by productive_ratio, the focus score, and the insight rules so the two
// code paths cannot drift apart.
var ProductiveCategories = map[models.Category]bool{
	models.CategoryProductive:  true,
	models.CategoryDevelopment: true,
}

type Config struct {
	LookbackWindow      time.Duration
	SessionGapMinutes   float64
	FocusSessionMinutes float64
	// Night window hours. Both zero means unset and falls back to 22..6;
	// setting either one keeps the other as given, so a window ending at
	// midnight is NightStartHour: 22, NightEndHour: 0.
	NightStartHour int
	NightEndHour   int
}

// Extractor computes the behavioral feature vector from a windowed usage
// event sequence. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	config Config
}

func New(cfg Config) *Extractor {
	if cfg.LookbackWindow == 0 {
		cfg.LookbackWindow = 24 * time.Hour
	}
	if cfg.SessionGapMinutes == 0 {
		cfg.SessionGapMinutes = 5.0
	}
	if cfg.FocusSessionMinutes == 0 {
		cfg.FocusSessionMinutes = 30.0
	}
	if cfg.NightStartHour == 0 && cfg.NightEndHour == 0 {
		cfg.NightStartHour = 22
		cfg.NightEndHour = 6
	}

	return &Extractor{config: cfg}
}

// Extract computes the full feature vector for the events within the
// lookback window ending at now. Callers normally pass a pre-windowed
// sequence; a superset is re-filtered here rather than trusted. Empty input
// yields the all-zero vector, never an error.
func (e *Extractor) Extract(events []models.UsageEvent, now time.Time) models.FeatureVector {
	windowed := e.filterWindow(events, now)
	if len(windowed) == 0 {
		return models.FeatureVector{}
	}

	var fv models.FeatureVector
	fv.ScreenTime = e.screenTime(windowed)
	fv.AvgSession = e.avgSessionLength(windowed)
	fv.Breaks = e.breakFrequency(windowed, fv.ScreenTime)
	fv.NightRatio = e.nightUsageRatio(windowed)
	fv.ProductiveRatio = e.categoryRatio(windowed, func(c models.Category) bool { return ProductiveCategories[c] })
	fv.SocialRatio = e.categoryRatio(windowed, func(c models.Category) bool { return c == models.CategorySocial })
	fv.EntertainmentRatio = e.categoryRatio(windowed, func(c models.Category) bool { return c == models.CategoryEntertainment })
	fv.FocusScore = e.focusScore(windowed)

	return fv
}

// ClassificationInput orders the features the fatigue classifier expects.
func (e *Extractor) ClassificationInput(fv models.FeatureVector) []float64 {
	return []float64{
		fv.ScreenTime,
		fv.AvgSession,
		fv.Breaks,
		fv.NightRatio,
		fv.ProductiveRatio,
	}
}

// RegressionInput orders the features the productivity regressor expects.
// The fatigue score slot comes from a prior classification; regression is
// undefined without it, which is why the caller must supply it explicitly.
func (e *Extractor) RegressionInput(fv models.FeatureVector, fatigueScore float64) []float64 {
	return []float64{
		fv.ScreenTime,
		fv.AvgSession,
		fv.Breaks,
		fv.NightRatio,
		fv.ProductiveRatio,
		fatigueScore,
	}
}

func (e *Extractor) filterWindow(events []models.UsageEvent, now time.Time) []models.UsageEvent {
	cutoff := now.Add(-e.config.LookbackWindow)

	filtered := make([]models.UsageEvent, 0, len(events))
	for _, ev := range events {
		if ev.Timestamp.Before(cutoff) || ev.Timestamp.After(now) {
			continue
		}
		filtered = append(filtered, ev)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	return filtered
}

func (e *Extractor) screenTime(events []models.UsageEvent) float64 {
	var totalMinutes float64
	for _, ev := range events {
		totalMinutes += ev.DurationMinutes
	}
	return round2(totalMinutes / 60)
}

// sessionDurations partitions the ordered sequence into sessions split on
// gaps above the threshold and returns the total minutes of each. With 0 or
// 1 events there are no gaps, so at most one session.
func (e *Extractor) sessionDurations(events []models.UsageEvent) []float64 {
	if len(events) == 0 {
		return nil
	}

	var sessions []float64
	current := events[0].DurationMinutes

	for i := 1; i < len(events); i++ {
		gap := events[i].Timestamp.Sub(events[i-1].Timestamp).Minutes()
		if gap > e.config.SessionGapMinutes {
			sessions = append(sessions, current)
			current = 0
		}
		current += events[i].DurationMinutes
	}
	sessions = append(sessions, current)

	return sessions
}

func (e *Extractor) avgSessionLength(events []models.UsageEvent) float64 {
	sessions := e.sessionDurations(events)
	if len(sessions) == 0 {
		return 0.0
	}

	var total float64
	for _, s := range sessions {
		total += s
	}

	avgMinutes := total / float64(len(sessions))
	return round2(avgMinutes / 60)
}

func (e *Extractor) breakFrequency(events []models.UsageEvent, screenTimeHours float64) float64 {
	if len(events) < 2 {
		return 0.0
	}

	var breaks int
	for i := 1; i < len(events); i++ {
		gap := events[i].Timestamp.Sub(events[i-1].Timestamp).Minutes()
		if gap > e.config.SessionGapMinutes {
			breaks++
		}
	}

	if screenTimeHours == 0 {
		return 0.0
	}

	return round2(float64(breaks) / screenTimeHours)
}

// nightUsageRatio counts minutes in the [start, 24) and [0, end) hour
// bands. Boundaries are half-open: hour 22 is night, hour 6 is not.
func (e *Extractor) nightUsageRatio(events []models.UsageEvent) float64 {
	var nightMinutes, totalMinutes float64
	for _, ev := range events {
		if e.isNightHour(ev.Timestamp.Hour()) {
			nightMinutes += ev.DurationMinutes
		}
		totalMinutes += ev.DurationMinutes
	}

	if totalMinutes == 0 {
		return 0.0
	}

	return round2(nightMinutes / totalMinutes)
}

// isNightHour checks hour against the configured window, half-open on both
// forms: a wrapping window like 22..6 covers [22,24) and [0,6), a plain one
// like 0..6 covers [0,6).
func (e *Extractor) isNightHour(hour int) bool {
	start, end := e.config.NightStartHour, e.config.NightEndHour
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

func (e *Extractor) categoryRatio(events []models.UsageEvent, match func(models.Category) bool) float64 {
	var matchedMinutes, totalMinutes float64
	for _, ev := range events {
		if match(ev.Category) {
			matchedMinutes += ev.DurationMinutes
		}
		totalMinutes += ev.DurationMinutes
	}

	if totalMinutes == 0 {
		return 0.0
	}

	return round2(matchedMinutes / totalMinutes)
}

// focusScore rewards long uninterrupted runs of productive-category usage.
// A run qualifies when its total duration reaches the focus threshold.
func (e *Extractor) focusScore(events []models.UsageEvent) float64 {
	var runs []float64
	var current float64
	inRun := false

	for _, ev := range events {
		if ProductiveCategories[ev.Category] {
			current += ev.DurationMinutes
			inRun = true
			continue
		}
		if inRun {
			if current >= e.config.FocusSessionMinutes {
				runs = append(runs, current)
			}
			current = 0
			inRun = false
		}
	}
	if inRun && current >= e.config.FocusSessionMinutes {
		runs = append(runs, current)
	}

	if len(runs) == 0 {
		return 0.0
	}

	var total float64
	for _, r := range runs {
		total += r
	}
	avgRun := total / float64(len(runs))

	score := float64(len(runs))*10 + (avgRun/60)*5
	if score > 100 {
		score = 100
	}

	return round2(score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
