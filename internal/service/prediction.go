package service

import (
	"context"
	"fmt"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/events"
	"github.com/OldStager01/fatigue-monitor/internal/features"
	"github.com/OldStager01/fatigue-monitor/internal/insights"
	"github.com/OldStager01/fatigue-monitor/internal/logger"
	"github.com/OldStager01/fatigue-monitor/internal/metrics"
	"github.com/OldStager01/fatigue-monitor/internal/mlmodel"
	"github.com/OldStager01/fatigue-monitor/internal/normalizer"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// UsageStore is the slice of the usage repository the service reads.
type UsageStore interface {
	GetLaptopRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.LaptopSample, error)
	GetMobileRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.MobileSample, error)
}

// PredictionStore persists and reads back prediction rows.
type PredictionStore interface {
	Insert(ctx context.Context, p *models.Prediction) error
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Prediction, error)
	GetLatestByUser(ctx context.Context, userID string) (*models.Prediction, error)
}

// PredictionService runs the full pipeline for one user: query the usage
// window, normalize, extract features, classify then regress, derive
// insights, persist, and publish. Regression always consumes the fatigue
// score produced by the classification that precedes it.
type PredictionService struct {
	usage      UsageStore
	store      PredictionStore
	norm       *normalizer.Normalizer
	extractor  *features.Extractor
	classifier *mlmodel.Classifier
	regressor  *mlmodel.Regressor
	insights   *insights.Engine
	publisher  *events.Publisher
	lookback   time.Duration
}

type Deps struct {
	Usage      UsageStore
	Store      PredictionStore
	Normalizer *normalizer.Normalizer
	Extractor  *features.Extractor
	Classifier *mlmodel.Classifier
	Regressor  *mlmodel.Regressor
	Insights   *insights.Engine
	Publisher  *events.Publisher
	Lookback   time.Duration
}

func NewPredictionService(deps Deps) *PredictionService {
	if deps.Lookback <= 0 {
		deps.Lookback = 24 * time.Hour
	}
	return &PredictionService{
		usage:      deps.Usage,
		store:      deps.Store,
		norm:       deps.Normalizer,
		extractor:  deps.Extractor,
		classifier: deps.Classifier,
		regressor:  deps.Regressor,
		insights:   deps.Insights,
		publisher:  deps.Publisher,
		lookback:   deps.Lookback,
	}
}

// Response is the full prediction payload served to clients.
type Response struct {
	UserID           string                   `json:"user_id"`
	GeneratedAt      time.Time                `json:"generated_at"`
	NotEnoughData    bool                     `json:"not_enough_data,omitempty"`
	Message          string                   `json:"message,omitempty"`
	FatigueScore     float64                  `json:"fatigue_score"`
	FatigueLevel     models.FatigueLevel      `json:"fatigue_level"`
	ProductivityLoss float64                  `json:"productivity_loss"`
	Confidence       float64                  `json:"confidence"`
	ModelVersion     string                   `json:"model_version,omitempty"`
	Features         map[string]float64       `json:"features"`
	Metrics          models.DerivedMetrics    `json:"metrics"`
	Zones            models.ProductivityZones `json:"zones"`
	DataSummary      models.DataSummary       `json:"data_summary"`
}

// Predict runs the pipeline over the lookback window ending now. An empty
// window is not an error: the response says so and nothing is persisted.
func (s *PredictionService) Predict(ctx context.Context, userID string) (*Response, error) {
	start := time.Now()
	now := start
	traceID := logger.TraceIDFromContext(ctx)
	pub := s.publisher.WithTraceID(traceID)

	pub.PredictionStarted(userID)

	from := now.Add(-s.lookback)
	laptop, err := s.usage.GetLaptopRange(ctx, userID, from, now, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load laptop usage: %w", err)
	}
	mobile, err := s.usage.GetMobileRange(ctx, userID, from, now, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load mobile usage: %w", err)
	}

	extractStart := time.Now()
	result := s.norm.Normalize(laptop, mobile, now)
	fv := s.extractor.Extract(result.Events, now)
	metrics.ExtractionDuration.Observe(time.Since(extractStart).Seconds())

	if result.Quality.DroppedRecords > 0 {
		metrics.RecordsDropped.Add(float64(result.Quality.DroppedRecords))
	}
	if result.Quality.QualityLevel == "poor" && result.Quality.TotalRecords > 0 {
		pub.DataQualityWarning(userID, result.Quality)
	}

	summary := models.DataSummary{
		TotalRecords:   result.Quality.TotalRecords,
		AnalysisWindow: s.lookback.String(),
		DataQuality:    result.Quality,
	}

	if len(result.Events) == 0 {
		logger.WithUser(userID).Info("Prediction skipped: no usable usage events in window")
		return &Response{
			UserID:        userID,
			GeneratedAt:   now,
			NotEnoughData: true,
			Message:       "not enough usage data in the analysis window",
			FatigueLevel:  models.FatigueLow,
			Features:      fv.Map(),
			DataSummary:   summary,
		}, nil
	}

	cls, err := s.classifier.Predict(s.extractor.ClassificationInput(fv))
	if err != nil {
		pub.Error(userID, "fatigue classification failed", err)
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	loss, err := s.regressor.Predict(s.extractor.RegressionInput(fv, cls.Score))
	if err != nil {
		pub.Error(userID, "productivity regression failed", err)
		return nil, fmt.Errorf("regression failed: %w", err)
	}

	prediction := models.NewPrediction(userID, cls.Score, cls.Level, loss, cls.Confidence)
	prediction.ModelVersion = s.classifier.Version()
	prediction.Features = fv

	if err := s.store.Insert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to persist prediction: %w", err)
	}

	derived := s.insights.Derive(fv, cls.Level)
	zones := s.insights.Zones(result.Events)

	pub.PredictionCompleted(userID, prediction)
	metrics.PredictionsTotal.WithLabelValues(string(cls.Level)).Inc()
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	logger.WithFields(map[string]interface{}{
		"user_id":       userID,
		"fatigue_score": cls.Score,
		"fatigue_level": cls.Level,
		"loss_hours":    loss,
	}).Info("Prediction complete")

	return &Response{
		UserID:           userID,
		GeneratedAt:      now,
		FatigueScore:     cls.Score,
		FatigueLevel:     cls.Level,
		ProductivityLoss: loss,
		Confidence:       cls.Confidence,
		ModelVersion:     prediction.ModelVersion,
		Features:         fv.Map(),
		Metrics:          derived,
		Zones:            zones,
		DataSummary:      summary,
	}, nil
}

// History returns the most recent stored predictions for a user.
func (s *PredictionService) History(ctx context.Context, userID string, limit int) ([]models.Prediction, error) {
	return s.store.GetRecentByUser(ctx, userID, limit)
}

// Latest returns the newest stored prediction for a user.
func (s *PredictionService) Latest(ctx context.Context, userID string) (*models.Prediction, error) {
	return s.store.GetLatestByUser(ctx, userID)
}
