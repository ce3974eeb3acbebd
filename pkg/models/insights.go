package models

// DerivedMetrics are presentation-layer scores computed from a FeatureVector.
type DerivedMetrics struct {
	ProductivityScore  float64  `json:"productivity_score"` // 0..100
	WellnessScore      float64  `json:"wellness_score"`     // 0..100
	RiskFactors        []string `json:"risk_factors"`
	RecommendedActions []string `json:"recommended_actions"`
}

// ProductivityZones names the hour ranges a user works best and worst in.
type ProductivityZones struct {
	PeakHours           []string `json:"peak_hours"`
	FatigueProneWindows []string `json:"fatigue_prone_windows"`
}

// DataQuality summarizes how usable the raw telemetry window was.
type DataQuality struct {
	TotalRecords     int     `json:"total_records"`
	DroppedRecords   int     `json:"dropped_records"`
	TimestampQuality float64 `json:"timestamp_quality"` // 0..1
	Completeness     float64 `json:"completeness"`      // 0..1
	QualityLevel     string  `json:"quality_level"`     // good/fair/poor
}

// DataSummary describes the window a prediction was computed from.
type DataSummary struct {
	TotalRecords   int         `json:"total_records"`
	AnalysisWindow string      `json:"analysis_window"`
	DataQuality    DataQuality `json:"data_quality"`
}
