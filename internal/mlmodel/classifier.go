package mlmodel

import (
	"math"

	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

const classifierFile = "fatigue_classifier.json"

// Classifier scores fatigue from the 5-feature classification vector. The
// model is a standardized logistic regression; its probability maps directly
// onto the 0-100 fatigue scale.
type Classifier struct {
	params *Params
}

func NewClassifier(cfg config.ModelConfig) (*Classifier, error) {
	params, err := loadParams(cfg.Dir, classifierFile)
	if err != nil {
		return nil, err
	}
	return &Classifier{params: params}, nil
}

// ClassifierOutput is one scored fatigue classification.
type ClassifierOutput struct {
	Score      float64             `json:"fatigue_score"` // 0..100
	Level      models.FatigueLevel `json:"fatigue_level"`
	Confidence float64             `json:"confidence"` // 0.5..1
}

// Predict expects the fixed-order vector [screen_time, avg_session, breaks,
// night_ratio, productive_ratio].
func (c *Classifier) Predict(input []float64) (*ClassifierOutput, error) {
	if c == nil || c.params == nil {
		return nil, ErrModelNotLoaded
	}

	scaled, err := c.params.standardize(input)
	if err != nil {
		return nil, err
	}

	p := sigmoid(c.params.linear(scaled))
	score := round2(p * 100)

	return &ClassifierOutput{
		Score:      score,
		Level:      LevelForScore(score),
		Confidence: round2(math.Max(p, 1-p)),
	}, nil
}

func (c *Classifier) Version() string {
	if c == nil || c.params == nil {
		return ""
	}
	return c.params.Version
}

// LevelForScore buckets a fatigue score into its label.
func LevelForScore(score float64) models.FatigueLevel {
	switch {
	case score > 70:
		return models.FatigueHigh
	case score > 40:
		return models.FatigueMedium
	default:
		return models.FatigueLow
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
