package insights

import "github.com/OldStager01/fatigue-monitor/pkg/models"

// FeatureExplanation documents one feature for API consumers.
type FeatureExplanation struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// FeatureExplanations lists the features in model input order.
func FeatureExplanations() []FeatureExplanation {
	return []FeatureExplanation{
		{models.FeatureScreenTime, "hours", "Total screen time across all devices in the analysis window"},
		{models.FeatureAvgSession, "hours", "Mean length of continuous usage sessions, split on gaps over five minutes"},
		{models.FeatureBreaks, "per hour", "Session gaps taken per hour of screen time"},
		{models.FeatureNightRatio, "ratio", "Share of usage between 22:00 and 06:00"},
		{models.FeatureProductiveRatio, "ratio", "Share of usage in productive and development apps"},
		{models.FeatureSocialRatio, "ratio", "Share of usage in social apps"},
		{models.FeatureEntertainmentRatio, "ratio", "Share of usage in entertainment apps"},
		{models.FeatureFocusScore, "0-100", "Reward for long uninterrupted productive runs of thirty minutes or more"},
	}
}
