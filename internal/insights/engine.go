package insights

import (
	"math"
	"sort"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// Engine turns a feature vector and a prediction into human-facing metrics
// and recommendations. All rules are threshold-based and deterministic.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Derive computes the presentation scores and risk factors for a window.
func (e *Engine) Derive(fv models.FeatureVector, level models.FatigueLevel) models.DerivedMetrics {
	return models.DerivedMetrics{
		ProductivityScore:  productivityScore(fv),
		WellnessScore:      wellnessScore(fv),
		RiskFactors:        riskFactors(fv),
		RecommendedActions: e.Recommend(fv, level),
	}
}

func productivityScore(fv models.FeatureVector) float64 {
	score := fv.ProductiveRatio*50 +
		math.Min(fv.Breaks, 4)*5 +
		math.Min(fv.ScreenTime, 8)*5

	return round2(clamp(score, 0, 100))
}

func wellnessScore(fv models.FeatureVector) float64 {
	score := 100.0
	score -= fv.NightRatio * 30
	score -= math.Max(0, fv.ScreenTime-6) * 5
	score += fv.Breaks * 10
	score += fv.ProductiveRatio * 15

	return round2(clamp(score, 0, 100))
}

func riskFactors(fv models.FeatureVector) []string {
	var risks []string
	if fv.NightRatio > 0.3 {
		risks = append(risks, "high night-time device usage")
	}
	if fv.ScreenTime > 10 {
		risks = append(risks, "excessive daily screen time")
	}
	if fv.ProductiveRatio < 0.3 {
		risks = append(risks, "low share of productive usage")
	}
	if fv.Breaks < 1 {
		risks = append(risks, "long stretches without breaks")
	}
	return risks
}

// recommendation pairs advice with a weight used for ranking. Higher weight
// surfaces first; only the top five are returned.
type recommendation struct {
	weight  float64
	message string
}

func (e *Engine) Recommend(fv models.FeatureVector, level models.FatigueLevel) []string {
	var recs []recommendation

	if level == models.FatigueHigh {
		recs = append(recs, recommendation{100, "Fatigue is high: wind down early today and protect your sleep window"})
	}
	if fv.ScreenTime > 10 {
		recs = append(recs, recommendation{90, "Cut total screen time: schedule at least one device-free hour"})
	} else if fv.ScreenTime > 8 {
		recs = append(recs, recommendation{60, "Screen time is creeping up: plan shorter evening sessions"})
	}
	if fv.NightRatio > 0.3 {
		recs = append(recs, recommendation{85, "Shift usage earlier: avoid screens between 22:00 and 06:00"})
	}
	if fv.Breaks < 1 && fv.ScreenTime > 2 {
		recs = append(recs, recommendation{80, "Take a short break at least once per hour of usage"})
	}
	if fv.AvgSession > 2 {
		recs = append(recs, recommendation{70, "Split long sessions: step away after 90 minutes at most"})
	}
	if fv.ProductiveRatio < 0.3 && fv.ScreenTime > 1 {
		recs = append(recs, recommendation{65, "Batch distracting apps into fixed windows instead of checking continuously"})
	}
	if fv.SocialRatio+fv.EntertainmentRatio > 0.5 {
		recs = append(recs, recommendation{55, "Set app timers for social and entertainment apps"})
	}
	if fv.FocusScore < 30 && fv.ProductiveRatio > 0 {
		recs = append(recs, recommendation{50, "Protect one uninterrupted 30-minute focus block each day"})
	}
	if len(recs) == 0 {
		recs = append(recs, recommendation{10, "Usage patterns look balanced: keep your current routine"})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].weight > recs[j].weight
	})

	if len(recs) > 5 {
		recs = recs[:5]
	}

	messages := make([]string, len(recs))
	for i, r := range recs {
		messages[i] = r.message
	}
	return messages
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
