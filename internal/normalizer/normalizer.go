package normalizer

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/features"
	"github.com/OldStager01/fatigue-monitor/internal/logger"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// timestampLayouts are tried in order when parsing sample timestamps.
// Trackers report RFC3339; older mobile builds omit the zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type Config struct {
	LookbackWindow       time.Duration
	IdleThresholdMinutes float64
}

// Normalizer converts raw laptop and mobile samples into one ordered
// sequence of usage events. Records with unparsable timestamps are dropped
// silently and accounted for in the quality report; malformed input never
// aborts the pipeline.
type Normalizer struct {
	config      Config
	categorizer *features.Categorizer
}

func New(cfg Config, categorizer *features.Categorizer) *Normalizer {
	if cfg.LookbackWindow == 0 {
		cfg.LookbackWindow = 24 * time.Hour
	}
	if cfg.IdleThresholdMinutes == 0 {
		cfg.IdleThresholdMinutes = 5.0
	}
	if categorizer == nil {
		categorizer = features.NewCategorizer(nil)
	}

	return &Normalizer{
		config:      cfg,
		categorizer: categorizer,
	}
}

// Result carries the normalized window plus its data-quality accounting.
type Result struct {
	Events  []models.UsageEvent
	Quality models.DataQuality
}

// Normalize merges both sources, sorts ascending by timestamp, and filters
// to the lookback window ending at now. An empty result is valid output.
func (n *Normalizer) Normalize(laptop []models.LaptopSample, mobile []models.MobileSample, now time.Time) *Result {
	total := len(laptop) + len(mobile)
	events := make([]models.UsageEvent, 0, total)
	dropped := 0

	for i := range laptop {
		ev, ok := n.normalizeLaptop(&laptop[i])
		if !ok {
			dropped++
			continue
		}
		events = append(events, ev)
	}

	for i := range mobile {
		ev, ok := n.normalizeMobile(&mobile[i])
		if !ok {
			dropped++
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	cutoff := now.Add(-n.config.LookbackWindow)
	windowed := events[:0:0]
	for _, ev := range events {
		if ev.Timestamp.Before(cutoff) || ev.Timestamp.After(now) {
			continue
		}
		windowed = append(windowed, ev)
	}

	if dropped > 0 {
		logger.Warnf("Normalizer dropped %d of %d records with unparsable timestamps", dropped, total)
	}

	return &Result{
		Events:  windowed,
		Quality: n.assessQuality(laptop, mobile, dropped),
	}
}

func (n *Normalizer) normalizeLaptop(s *models.LaptopSample) (models.UsageEvent, bool) {
	ts, ok := ParseTimestamp(s.Timestamp)
	if !ok {
		return models.UsageEvent{}, false
	}

	appName := strings.ToLower(strings.TrimSpace(s.ActiveApp))
	if appName == "" {
		appName = "unknown"
	}

	timeOfDay := s.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = models.TimeOfDay(ts)
	}

	return models.UsageEvent{
		Timestamp:       ts,
		DeviceClass:     models.DeviceLaptop,
		AppName:         appName,
		DurationMinutes: nonNegative(s.UsageDuration),
		Category:        n.categorizer.Categorize(appName),
		IsIdle:          s.IdleTime > n.config.IdleThresholdMinutes,
		TimeOfDay:       timeOfDay,
	}, true
}

func (n *Normalizer) normalizeMobile(s *models.MobileSample) (models.UsageEvent, bool) {
	ts, ok := ParseTimestamp(s.Timestamp)
	if !ok {
		return models.UsageEvent{}, false
	}

	appName := strings.ToLower(strings.TrimSpace(s.AppName))
	if appName == "" {
		appName = "unknown"
	}

	// Mobile records may carry their own label; fall back to the app-name
	// heuristic when they don't.
	var category models.Category
	if s.Category != "" {
		category = models.Category(strings.ToLower(s.Category))
	} else {
		category = n.categorizer.Categorize(appName)
	}

	return models.UsageEvent{
		Timestamp:       ts,
		DeviceClass:     models.DeviceMobile,
		AppName:         appName,
		DurationMinutes: nonNegative(s.ScreenTime),
		Category:        category,
		IsIdle:          false, // mobile does not track idle
		TimeOfDay:       models.TimeOfDay(ts),
	}, true
}

func (n *Normalizer) assessQuality(laptop []models.LaptopSample, mobile []models.MobileSample, dropped int) models.DataQuality {
	total := len(laptop) + len(mobile)
	if total == 0 {
		return models.DataQuality{QualityLevel: "poor"}
	}

	valid := total - dropped

	// Completeness counts records carrying both a timestamp and a usable
	// duration. An absent duration field decodes to 0 on this wire schema,
	// so zero and missing are indistinguishable and both count against it.
	complete := 0
	for _, s := range laptop {
		if s.Timestamp != "" && s.UsageDuration > 0 {
			complete++
		}
	}
	for _, s := range mobile {
		if s.Timestamp != "" && s.ScreenTime > 0 {
			complete++
		}
	}

	completeness := float64(complete) / float64(total)

	level := "poor"
	switch {
	case completeness > 0.7:
		level = "good"
	case completeness > 0.4:
		level = "fair"
	}

	return models.DataQuality{
		TotalRecords:     total,
		DroppedRecords:   dropped,
		TimestampQuality: round2(float64(valid) / float64(total)),
		Completeness:     round2(completeness),
		QualityLevel:     level,
	}
}

// ParseTimestamp parses a tracker-reported timestamp, trying each accepted
// layout in order. Ingestion uses it to reject unstorable records up front
// with the same rules the normalizer applies later.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
