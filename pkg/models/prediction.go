package models

import "time"

type FatigueLevel string

const (
	FatigueLow    FatigueLevel = "Low"
	FatigueMedium FatigueLevel = "Medium"
	FatigueHigh   FatigueLevel = "High"
)

// Prediction is a stored prediction outcome for a user.
type Prediction struct {
	ID               int           `json:"id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UserID           string        `json:"user_id"`
	FatigueScore     float64       `json:"fatigue_score"`
	FatigueLevel     FatigueLevel  `json:"fatigue_level"`
	ProductivityLoss float64       `json:"productivity_loss"` // hours/week
	Confidence       float64       `json:"confidence"`
	ModelVersion     string        `json:"model_version,omitempty"`
	Features         FeatureVector `json:"features"`
}

func NewPrediction(userID string, score float64, level FatigueLevel, loss, confidence float64) *Prediction {
	return &Prediction{
		CreatedAt:        time.Now(),
		UserID:           userID,
		FatigueScore:     score,
		FatigueLevel:     level,
		ProductivityLoss: loss,
		Confidence:       confidence,
	}
}

func (p *Prediction) IsHighFatigue() bool {
	return p.FatigueLevel == FatigueHigh
}
