package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

var now = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func laptopSample(ts string, app string, minutes float64) models.LaptopSample {
	return models.LaptopSample{
		Timestamp:     ts,
		ActiveApp:     app,
		UsageDuration: minutes,
	}
}

func mobileSample(ts string, app string, minutes float64) models.MobileSample {
	return models.MobileSample{
		Timestamp:  ts,
		AppName:    app,
		ScreenTime: minutes,
	}
}

func TestNormalize_MergesAndSorts(t *testing.T) {
	n := New(Config{}, nil)

	laptop := []models.LaptopSample{
		laptopSample("2025-06-02T10:00:00Z", "vs code", 30),
	}
	mobile := []models.MobileSample{
		mobileSample("2025-06-02T09:00:00Z", "instagram", 15),
		mobileSample("2025-06-02T11:00:00Z", "youtube", 20),
	}

	result := n.Normalize(laptop, mobile, now)

	require.Len(t, result.Events, 3)
	assert.Equal(t, "instagram", result.Events[0].AppName)
	assert.Equal(t, "vs code", result.Events[1].AppName)
	assert.Equal(t, "youtube", result.Events[2].AppName)
	for i := 1; i < len(result.Events); i++ {
		assert.False(t, result.Events[i].Timestamp.Before(result.Events[i-1].Timestamp))
	}
}

func TestNormalize_DropsUnparsableTimestamps(t *testing.T) {
	n := New(Config{}, nil)

	laptop := []models.LaptopSample{
		laptopSample("not-a-timestamp", "vs code", 30),
		laptopSample("", "excel", 10),
		laptopSample("2025-06-02T10:00:00Z", "word", 20),
	}

	result := n.Normalize(laptop, nil, now)

	require.Len(t, result.Events, 1)
	assert.Equal(t, "word", result.Events[0].AppName)
	assert.Equal(t, 2, result.Quality.DroppedRecords)
	assert.Equal(t, 3, result.Quality.TotalRecords)
}

func TestNormalize_AcceptedTimestampLayouts(t *testing.T) {
	n := New(Config{}, nil)

	layouts := []string{
		"2025-06-02T10:00:00.123456Z",
		"2025-06-02T10:00:00Z",
		"2025-06-02T10:00:00",
		"2025-06-02 10:00:00",
	}

	for _, ts := range layouts {
		t.Run(ts, func(t *testing.T) {
			result := n.Normalize([]models.LaptopSample{laptopSample(ts, "excel", 5)}, nil, now)
			assert.Len(t, result.Events, 1)
		})
	}
}

func TestNormalize_LaptopFields(t *testing.T) {
	n := New(Config{IdleThresholdMinutes: 5}, nil)

	laptop := []models.LaptopSample{
		{
			Timestamp:     "2025-06-02T10:00:00Z",
			ActiveApp:     "  VS Code  ",
			UsageDuration: 45,
			IdleTime:      10,
		},
	}

	result := n.Normalize(laptop, nil, now)

	require.Len(t, result.Events, 1)
	ev := result.Events[0]
	assert.Equal(t, models.DeviceLaptop, ev.DeviceClass)
	assert.Equal(t, "vs code", ev.AppName, "app names are trimmed and lowercased")
	assert.Equal(t, models.CategoryProductive, ev.Category)
	assert.True(t, ev.IsIdle, "idle time above the threshold marks the event idle")
	assert.Equal(t, "morning", ev.TimeOfDay)
}

func TestNormalize_MobileCategoryFallback(t *testing.T) {
	n := New(Config{}, nil)

	mobile := []models.MobileSample{
		{Timestamp: "2025-06-02T10:00:00Z", AppName: "instagram", ScreenTime: 10, Category: "Entertainment"},
		{Timestamp: "2025-06-02T10:05:00Z", AppName: "instagram", ScreenTime: 10},
	}

	result := n.Normalize(nil, mobile, now)

	require.Len(t, result.Events, 2)
	assert.Equal(t, models.CategoryEntertainment, result.Events[0].Category, "reported category wins")
	assert.Equal(t, models.CategorySocial, result.Events[1].Category, "missing category falls back to the app-name heuristic")
}

func TestNormalize_WindowFilter(t *testing.T) {
	n := New(Config{LookbackWindow: 24 * time.Hour}, nil)

	laptop := []models.LaptopSample{
		laptopSample("2025-05-30T10:00:00Z", "excel", 30), // too old
		laptopSample("2025-06-03T10:00:00Z", "excel", 30), // future
		laptopSample("2025-06-02T10:00:00Z", "excel", 30),
	}

	result := n.Normalize(laptop, nil, now)

	require.Len(t, result.Events, 1)
	assert.Equal(t, 3, result.Quality.TotalRecords, "out-of-window records still count toward quality")
}

func TestNormalize_NegativeDurationClamped(t *testing.T) {
	n := New(Config{}, nil)

	result := n.Normalize([]models.LaptopSample{laptopSample("2025-06-02T10:00:00Z", "excel", -5)}, nil, now)

	require.Len(t, result.Events, 1)
	assert.Equal(t, 0.0, result.Events[0].DurationMinutes)
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := New(Config{}, nil)

	result := n.Normalize(nil, nil, now)

	assert.Empty(t, result.Events)
	assert.Equal(t, "poor", result.Quality.QualityLevel)
}

func TestAssessQuality_Levels(t *testing.T) {
	n := New(Config{}, nil)

	t.Run("good", func(t *testing.T) {
		laptop := []models.LaptopSample{
			laptopSample("2025-06-02T10:00:00Z", "excel", 10),
			laptopSample("2025-06-02T10:05:00Z", "excel", 10),
			laptopSample("2025-06-02T10:10:00Z", "excel", 10),
		}
		result := n.Normalize(laptop, nil, now)
		assert.Equal(t, "good", result.Quality.QualityLevel)
		assert.Equal(t, 1.0, result.Quality.Completeness)
	})

	t.Run("fair", func(t *testing.T) {
		laptop := []models.LaptopSample{
			laptopSample("2025-06-02T10:00:00Z", "excel", 10),
			laptopSample("2025-06-02T10:05:00Z", "excel", 0), // no duration
		}
		result := n.Normalize(laptop, nil, now)
		assert.Equal(t, "fair", result.Quality.QualityLevel)
	})
}
