package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func event(ts time.Time, minutes float64, category models.Category) models.UsageEvent {
	return models.UsageEvent{
		Timestamp:       ts,
		DeviceClass:     models.DeviceLaptop,
		AppName:         "test-app",
		DurationMinutes: minutes,
		Category:        category,
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := New(Config{})

	fv := e.Extract(nil, at(12, 0))

	assert.True(t, fv.IsZero(), "empty input must yield the all-zero vector")
}

func TestExtract_SingleEvent(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(9, 0), 60, models.CategoryProductive),
	}

	fv := e.Extract(events, at(12, 0))

	assert.Equal(t, 1.0, fv.ScreenTime)
	assert.Equal(t, 1.0, fv.AvgSession)
	assert.Equal(t, 0.0, fv.Breaks, "fewer than two events means no break signal")
	assert.Equal(t, 0.0, fv.NightRatio)
	assert.Equal(t, 1.0, fv.ProductiveRatio)
}

func TestExtract_SessionGapSplitsSessions(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(9, 0), 30, models.CategoryProductive),
		event(at(9, 40), 30, models.CategoryProductive),
	}

	fv := e.Extract(events, at(12, 0))

	// 40 minute spacing is a 40 minute gap, above the 5 minute threshold
	assert.Equal(t, 1.0, fv.ScreenTime)
	assert.Equal(t, 0.5, fv.AvgSession, "two 30-minute sessions average to half an hour")
	assert.Equal(t, 1.0, fv.Breaks, "one break over one hour of screen time")
}

func TestExtract_GapAtThresholdDoesNotSplit(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(9, 0), 30, models.CategoryProductive),
		event(at(9, 5), 30, models.CategoryProductive),
	}

	fv := e.Extract(events, at(12, 0))

	assert.Equal(t, 1.0, fv.AvgSession, "a gap of exactly the threshold stays one session")
	assert.Equal(t, 0.0, fv.Breaks)
}

func TestExtract_NightBoundaries(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(22, 0), 60, models.CategoryOther), // night starts at 22
		event(at(6, 0), 60, models.CategoryOther),  // night ends before 6
	}

	fv := e.Extract(events, at(23, 0))

	assert.Equal(t, 0.5, fv.NightRatio)
}

func TestExtract_ConfiguredNightWindow(t *testing.T) {
	t.Run("window ending at midnight", func(t *testing.T) {
		e := New(Config{NightStartHour: 22, NightEndHour: 0})
		events := []models.UsageEvent{
			event(at(23, 0), 60, models.CategoryOther),
			event(at(5, 0), 60, models.CategoryOther),
		}

		fv := e.Extract(events, at(23, 30))

		assert.Equal(t, 0.5, fv.NightRatio, "05:00 falls outside a 22:00-00:00 window")
	})

	t.Run("window starting at midnight", func(t *testing.T) {
		e := New(Config{NightStartHour: 0, NightEndHour: 6})
		events := []models.UsageEvent{
			event(at(23, 0), 60, models.CategoryOther),
			event(at(5, 0), 60, models.CategoryOther),
		}

		fv := e.Extract(events, at(23, 30))

		assert.Equal(t, 0.5, fv.NightRatio, "23:00 falls outside a 00:00-06:00 window")
	})
}

func TestExtract_CategoryRatios(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(9, 0), 30, models.CategoryProductive),
		event(at(9, 1), 30, models.CategoryDevelopment),
		event(at(9, 2), 20, models.CategorySocial),
		event(at(9, 3), 20, models.CategoryEntertainment),
	}

	fv := e.Extract(events, at(12, 0))

	assert.Equal(t, 0.6, fv.ProductiveRatio, "development counts toward productive usage")
	assert.Equal(t, 0.2, fv.SocialRatio)
	assert.Equal(t, 0.2, fv.EntertainmentRatio)
}

func TestExtract_RatioBounds(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(23, 0), 120, models.CategorySocial),
		event(at(25, 0), 240, models.CategorySocial),
	}

	fv := e.Extract(events, at(26, 0))

	for name, v := range map[string]float64{
		"night_ratio":         fv.NightRatio,
		"productive_ratio":    fv.ProductiveRatio,
		"social_ratio":        fv.SocialRatio,
		"entertainment_ratio": fv.EntertainmentRatio,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
	assert.GreaterOrEqual(t, fv.FocusScore, 0.0)
	assert.LessOrEqual(t, fv.FocusScore, 100.0)
}

func TestExtract_FocusScore(t *testing.T) {
	e := New(Config{})

	t.Run("short run scores zero", func(t *testing.T) {
		events := []models.UsageEvent{
			event(at(9, 0), 20, models.CategoryProductive),
		}
		fv := e.Extract(events, at(12, 0))
		assert.Equal(t, 0.0, fv.FocusScore)
	})

	t.Run("ninety minute run", func(t *testing.T) {
		events := []models.UsageEvent{
			event(at(9, 0), 45, models.CategoryProductive),
			event(at(9, 46), 45, models.CategoryDevelopment),
		}
		fv := e.Extract(events, at(12, 0))
		// one qualifying run of 90 minutes: 10 + (1.5 * 5)
		assert.Equal(t, 17.5, fv.FocusScore)
	})

	t.Run("interrupted runs count separately", func(t *testing.T) {
		events := []models.UsageEvent{
			event(at(9, 0), 40, models.CategoryProductive),
			event(at(9, 41), 10, models.CategorySocial),
			event(at(9, 52), 40, models.CategoryProductive),
		}
		fv := e.Extract(events, at(12, 0))
		// two 40-minute runs: 20 + (40.0/60 * 5)
		assert.Equal(t, 23.33, fv.FocusScore)
	})
}

func TestExtract_WindowFiltering(t *testing.T) {
	e := New(Config{LookbackWindow: 24 * time.Hour})
	now := at(12, 0)
	events := []models.UsageEvent{
		event(now.Add(-25*time.Hour), 60, models.CategoryProductive), // too old
		event(now.Add(time.Hour), 60, models.CategoryProductive),     // in the future
		event(now.Add(-time.Hour), 60, models.CategoryProductive),
	}

	fv := e.Extract(events, now)

	assert.Equal(t, 1.0, fv.ScreenTime, "only the in-window event counts")
}

func TestExtract_Idempotent(t *testing.T) {
	e := New(Config{})
	events := []models.UsageEvent{
		event(at(9, 0), 30, models.CategoryProductive),
		event(at(9, 40), 20, models.CategorySocial),
		event(at(23, 0), 45, models.CategoryEntertainment),
	}
	now := at(23, 30)

	first := e.Extract(events, now)
	second := e.Extract(events, now)

	assert.Equal(t, first, second)
}

func TestExtract_UnorderedInputIsSorted(t *testing.T) {
	e := New(Config{})
	ordered := []models.UsageEvent{
		event(at(9, 0), 30, models.CategoryProductive),
		event(at(9, 40), 30, models.CategoryProductive),
	}
	shuffled := []models.UsageEvent{ordered[1], ordered[0]}

	now := at(12, 0)
	assert.Equal(t, e.Extract(ordered, now), e.Extract(shuffled, now))
}

func TestClassificationInput_Order(t *testing.T) {
	e := New(Config{})
	fv := models.FeatureVector{
		ScreenTime:      8.5,
		AvgSession:      2.1,
		Breaks:          0.7,
		NightRatio:      0.4,
		ProductiveRatio: 0.3,
		SocialRatio:     0.5,
		FocusScore:      22,
	}

	input := e.ClassificationInput(fv)

	require.Len(t, input, 5)
	assert.Equal(t, []float64{8.5, 2.1, 0.7, 0.4, 0.3}, input)
}

func TestRegressionInput_AppendsFatigueScore(t *testing.T) {
	e := New(Config{})
	fv := models.FeatureVector{
		ScreenTime:      8.5,
		AvgSession:      2.1,
		Breaks:          0.7,
		NightRatio:      0.4,
		ProductiveRatio: 0.3,
	}

	input := e.RegressionInput(fv, 63.2)

	require.Len(t, input, 6)
	assert.Equal(t, e.ClassificationInput(fv), input[:5])
	assert.Equal(t, 63.2, input[5], "sixth slot must carry the classifier output exactly")
}
