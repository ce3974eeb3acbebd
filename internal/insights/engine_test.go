package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name     string
		fv       models.FeatureVector
		expected float64
	}{
		{
			name:     "zero vector",
			fv:       models.FeatureVector{},
			expected: 0,
		},
		{
			name: "typical workday",
			fv: models.FeatureVector{
				ProductiveRatio: 0.6,
				Breaks:          2,
				ScreenTime:      7,
			},
			// 0.6*50 + 2*5 + 7*5
			expected: 75,
		},
		{
			name: "breaks and screen time capped",
			fv: models.FeatureVector{
				ProductiveRatio: 1.0,
				Breaks:          10,
				ScreenTime:      16,
			},
			// 50 + min(10,4)*5 + min(16,8)*5 = 110 clamped
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, productivityScore(tt.fv))
		})
	}
}

func TestWellnessScore(t *testing.T) {
	tests := []struct {
		name     string
		fv       models.FeatureVector
		expected float64
	}{
		{
			name: "healthy pattern",
			fv: models.FeatureVector{
				ScreenTime:      5,
				Breaks:          2,
				NightRatio:      0,
				ProductiveRatio: 0.5,
			},
			// 100 - 0 - 0 + 20 + 7.5 clamped to 100
			expected: 100,
		},
		{
			name: "heavy night usage",
			fv: models.FeatureVector{
				ScreenTime:      12,
				Breaks:          0,
				NightRatio:      0.8,
				ProductiveRatio: 0.1,
			},
			// 100 - 24 - 30 + 0 + 1.5
			expected: 47.5,
		},
		{
			name: "floor at zero",
			fv: models.FeatureVector{
				ScreenTime: 30,
				NightRatio: 1.0,
			},
			// 100 - 30 - 120 clamps to 0
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wellnessScore(tt.fv))
		})
	}
}

func TestRiskFactors(t *testing.T) {
	t.Run("all thresholds crossed", func(t *testing.T) {
		fv := models.FeatureVector{
			NightRatio:      0.4,
			ScreenTime:      11,
			ProductiveRatio: 0.2,
			Breaks:          0.5,
		}

		risks := riskFactors(fv)
		assert.Len(t, risks, 4)
	})

	t.Run("boundaries are exclusive", func(t *testing.T) {
		fv := models.FeatureVector{
			NightRatio:      0.3,
			ScreenTime:      10,
			ProductiveRatio: 0.3,
			Breaks:          1,
		}

		assert.Empty(t, riskFactors(fv))
	})
}

func TestRecommend(t *testing.T) {
	e := NewEngine()

	t.Run("balanced usage gets the fallback", func(t *testing.T) {
		fv := models.FeatureVector{
			ScreenTime:      5,
			AvgSession:      1,
			Breaks:          2,
			ProductiveRatio: 0.6,
			FocusScore:      45,
		}

		recs := e.Recommend(fv, models.FatigueLow)

		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "balanced")
	})

	t.Run("high fatigue ranks first", func(t *testing.T) {
		fv := models.FeatureVector{
			ScreenTime: 11,
			NightRatio: 0.5,
			AvgSession: 3,
			Breaks:     0.2,
		}

		recs := e.Recommend(fv, models.FatigueHigh)

		require.NotEmpty(t, recs)
		assert.Contains(t, recs[0], "Fatigue is high")
	})

	t.Run("at most five recommendations", func(t *testing.T) {
		fv := models.FeatureVector{
			ScreenTime:         12,
			AvgSession:         3,
			Breaks:             0.2,
			NightRatio:         0.5,
			ProductiveRatio:    0.1,
			SocialRatio:        0.4,
			EntertainmentRatio: 0.3,
			FocusScore:         5,
		}

		recs := e.Recommend(fv, models.FatigueHigh)

		assert.Len(t, recs, 5)
	})
}

func TestDerive(t *testing.T) {
	e := NewEngine()
	fv := models.FeatureVector{
		ScreenTime:      7,
		Breaks:          2,
		ProductiveRatio: 0.6,
	}

	m := e.Derive(fv, models.FatigueLow)

	assert.Equal(t, 75.0, m.ProductivityScore)
	assert.NotEmpty(t, m.RecommendedActions)
	assert.Empty(t, m.RiskFactors)
}

func zoneEvent(hour int, minutes float64, category models.Category) models.UsageEvent {
	return models.UsageEvent{
		Timestamp:       time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC),
		DurationMinutes: minutes,
		Category:        category,
	}
}

func TestZones(t *testing.T) {
	e := NewEngine()

	t.Run("classifies peak and fatigue-prone hours", func(t *testing.T) {
		events := []models.UsageEvent{
			zoneEvent(9, 50, models.CategoryProductive),
			zoneEvent(9, 10, models.CategorySocial),
			zoneEvent(22, 5, models.CategoryProductive),
			zoneEvent(22, 40, models.CategoryEntertainment),
		}

		zones := e.Zones(events)

		assert.Equal(t, []string{"09:00-10:00"}, zones.PeakHours)
		assert.Equal(t, []string{"22:00-23:00"}, zones.FatigueProneWindows)
	})

	t.Run("thin hours carry no signal", func(t *testing.T) {
		events := []models.UsageEvent{
			zoneEvent(9, 10, models.CategoryProductive),
		}

		zones := e.Zones(events)

		assert.Empty(t, zones.PeakHours)
		assert.Empty(t, zones.FatigueProneWindows)
	})

	t.Run("middling hours are neither", func(t *testing.T) {
		events := []models.UsageEvent{
			zoneEvent(14, 30, models.CategoryProductive),
			zoneEvent(14, 30, models.CategorySocial),
		}

		zones := e.Zones(events)

		assert.Empty(t, zones.PeakHours)
		assert.Empty(t, zones.FatigueProneWindows)
	})

	t.Run("contiguous hours merge into one range", func(t *testing.T) {
		events := []models.UsageEvent{
			zoneEvent(9, 60, models.CategoryDevelopment),
			zoneEvent(10, 60, models.CategoryProductive),
			zoneEvent(11, 60, models.CategoryDevelopment),
			zoneEvent(15, 60, models.CategoryProductive),
		}

		zones := e.Zones(events)

		assert.Equal(t, []string{"09:00-12:00", "15:00-16:00"}, zones.PeakHours)
	})

	t.Run("hour 23 wraps to midnight", func(t *testing.T) {
		events := []models.UsageEvent{
			zoneEvent(23, 60, models.CategoryEntertainment),
		}

		zones := e.Zones(events)

		assert.Equal(t, []string{"23:00-00:00"}, zones.FatigueProneWindows)
	})
}

func TestFeatureExplanations(t *testing.T) {
	explanations := FeatureExplanations()

	require.Len(t, explanations, 8)
	assert.Equal(t, models.FeatureScreenTime, explanations[0].Name)
	assert.Equal(t, models.FeatureProductiveRatio, explanations[4].Name)
	assert.Equal(t, models.FeatureFocusScore, explanations[7].Name)

	for _, ex := range explanations {
		assert.NotEmpty(t, ex.Unit, ex.Name)
		assert.NotEmpty(t, ex.Description, ex.Name)
	}
}
