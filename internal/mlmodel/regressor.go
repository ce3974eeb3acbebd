package mlmodel

import (
	"github.com/OldStager01/fatigue-monitor/pkg/config"
)

const regressorFile = "productivity_regressor.json"

// Regressor estimates productivity loss in hours per week from the
// 6-feature regression vector. The sixth slot is the fatigue score produced
// by a prior classification; the regressor never runs without one.
type Regressor struct {
	params *Params
}

func NewRegressor(cfg config.ModelConfig) (*Regressor, error) {
	params, err := loadParams(cfg.Dir, regressorFile)
	if err != nil {
		return nil, err
	}
	return &Regressor{params: params}, nil
}

// Predict expects [screen_time, avg_session, breaks, night_ratio,
// productive_ratio, fatigue_score] and returns hours per week, never
// negative.
func (r *Regressor) Predict(input []float64) (float64, error) {
	if r == nil || r.params == nil {
		return 0, ErrModelNotLoaded
	}

	scaled, err := r.params.standardize(input)
	if err != nil {
		return 0, err
	}

	loss := r.params.linear(scaled)
	if loss < 0 {
		loss = 0
	}

	return round2(loss), nil
}

func (r *Regressor) Version() string {
	if r == nil || r.params == nil {
		return ""
	}
	return r.params.Version
}
