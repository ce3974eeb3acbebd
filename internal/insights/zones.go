package insights

import (
	"fmt"
	"sort"

	"github.com/OldStager01/fatigue-monitor/internal/features"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

const (
	peakRatioThreshold    = 0.6
	fatigueRatioThreshold = 0.3
	minZoneMinutes        = 15.0
)

type hourStats struct {
	productiveMinutes float64
	totalMinutes      float64
}

// Zones aggregates the event sequence per hour of day and names the ranges
// where the user is mostly productive versus mostly not. Hours with under
// fifteen minutes of usage carry too little signal and are skipped.
func (e *Engine) Zones(events []models.UsageEvent) models.ProductivityZones {
	byHour := make(map[int]*hourStats)
	for _, ev := range events {
		hour := ev.Timestamp.Hour()
		stats, ok := byHour[hour]
		if !ok {
			stats = &hourStats{}
			byHour[hour] = stats
		}
		stats.totalMinutes += ev.DurationMinutes
		if features.ProductiveCategories[ev.Category] {
			stats.productiveMinutes += ev.DurationMinutes
		}
	}

	var peak, prone []int
	for hour, stats := range byHour {
		if stats.totalMinutes < minZoneMinutes {
			continue
		}
		ratio := stats.productiveMinutes / stats.totalMinutes
		switch {
		case ratio >= peakRatioThreshold:
			peak = append(peak, hour)
		case ratio <= fatigueRatioThreshold:
			prone = append(prone, hour)
		}
	}

	return models.ProductivityZones{
		PeakHours:           hourRanges(peak),
		FatigueProneWindows: hourRanges(prone),
	}
}

// hourRanges merges sorted hours into contiguous "HH:00-HH:00" spans.
func hourRanges(hours []int) []string {
	if len(hours) == 0 {
		return nil
	}
	sort.Ints(hours)

	var ranges []string
	start, prev := hours[0], hours[0]
	for _, h := range hours[1:] {
		if h == prev+1 {
			prev = h
			continue
		}
		ranges = append(ranges, formatRange(start, prev))
		start, prev = h, h
	}
	ranges = append(ranges, formatRange(start, prev))

	return ranges
}

func formatRange(start, end int) string {
	return fmt.Sprintf("%02d:00-%02d:00", start, (end+1)%24)
}
