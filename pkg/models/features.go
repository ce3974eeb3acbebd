package models

// Feature names, in the order the pre-trained models expect them.
const (
	FeatureScreenTime         = "screen_time"
	FeatureAvgSession         = "avg_session"
	FeatureBreaks             = "breaks"
	FeatureNightRatio         = "night_ratio"
	FeatureProductiveRatio    = "productive_ratio"
	FeatureSocialRatio        = "social_ratio"
	FeatureEntertainmentRatio = "entertainment_ratio"
	FeatureFocusScore         = "focus_score"
)

// FeatureVector holds the behavioral features extracted from a usage window.
// The zero value is the valid all-zero vector returned for empty input.
type FeatureVector struct {
	ScreenTime         float64 `json:"screen_time"`         // hours
	AvgSession         float64 `json:"avg_session"`         // hours
	Breaks             float64 `json:"breaks"`              // per hour of usage
	NightRatio         float64 `json:"night_ratio"`         // 0..1
	ProductiveRatio    float64 `json:"productive_ratio"`    // 0..1
	SocialRatio        float64 `json:"social_ratio"`        // 0..1
	EntertainmentRatio float64 `json:"entertainment_ratio"` // 0..1
	FocusScore         float64 `json:"focus_score"`         // 0..100
}

// Map returns the vector as a name-to-value mapping for API responses.
func (f FeatureVector) Map() map[string]float64 {
	return map[string]float64{
		FeatureScreenTime:         f.ScreenTime,
		FeatureAvgSession:         f.AvgSession,
		FeatureBreaks:             f.Breaks,
		FeatureNightRatio:         f.NightRatio,
		FeatureProductiveRatio:    f.ProductiveRatio,
		FeatureSocialRatio:        f.SocialRatio,
		FeatureEntertainmentRatio: f.EntertainmentRatio,
		FeatureFocusScore:         f.FocusScore,
	}
}

// IsZero reports whether every feature is at its empty-window default.
func (f FeatureVector) IsZero() bool {
	return f == FeatureVector{}
}
