package mlmodel

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OldStager01/fatigue-monitor/internal/logger"
)

//go:embed coefficients/*.json
var defaultCoefficients embed.FS

var (
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrInputSize      = errors.New("input vector has wrong size")
)

// Params holds the trained coefficients of one linear model along with the
// standardization constants baked in at training time.
type Params struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	ScalerMean   []float64 `json:"scaler_mean"`
	ScalerScale  []float64 `json:"scaler_scale"`
}

func (p *Params) validate() error {
	n := len(p.Features)
	if n == 0 {
		return fmt.Errorf("model %s: no features", p.Name)
	}
	if len(p.Coefficients) != n || len(p.ScalerMean) != n || len(p.ScalerScale) != n {
		return fmt.Errorf("model %s: coefficient/scaler lengths do not match %d features", p.Name, n)
	}
	for i, s := range p.ScalerScale {
		if s == 0 {
			return fmt.Errorf("model %s: zero scaler scale at index %d", p.Name, i)
		}
	}
	return nil
}

// loadParams reads a coefficient file from the override directory when one
// is configured, falling back to the embedded defaults. Models load once at
// startup and are injected into consumers; there is no global registry.
func loadParams(dir, filename string) (*Params, error) {
	var (
		data []byte
		err  error
		src  string
	)

	if dir != "" {
		path := filepath.Join(dir, filename)
		data, err = os.ReadFile(path)
		src = path
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
		}
	}

	if data == nil {
		data, err = defaultCoefficients.ReadFile("coefficients/" + filename)
		src = "embedded"
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded model %s: %w", filename, err)
		}
	}

	var params Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", filename, err)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"model":   params.Name,
		"version": params.Version,
		"source":  src,
	}).Info("Model coefficients loaded")

	return &params, nil
}

// standardize applies the training-time scaler to a raw input vector.
func (p *Params) standardize(input []float64) ([]float64, error) {
	if len(input) != len(p.Features) {
		return nil, fmt.Errorf("%w: model %s wants %d values, got %d",
			ErrInputSize, p.Name, len(p.Features), len(input))
	}

	scaled := make([]float64, len(input))
	for i, v := range input {
		scaled[i] = (v - p.ScalerMean[i]) / p.ScalerScale[i]
	}
	return scaled, nil
}

// linear evaluates the model on an already standardized vector.
func (p *Params) linear(scaled []float64) float64 {
	sum := p.Intercept
	for i, v := range scaled {
		sum += p.Coefficients[i] * v
	}
	return sum
}
