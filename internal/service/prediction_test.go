package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/fatigue-monitor/internal/events"
	"github.com/OldStager01/fatigue-monitor/internal/features"
	"github.com/OldStager01/fatigue-monitor/internal/insights"
	"github.com/OldStager01/fatigue-monitor/internal/mlmodel"
	"github.com/OldStager01/fatigue-monitor/internal/normalizer"
	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

type fakeUsageStore struct {
	laptop    []models.LaptopSample
	mobile    []models.MobileSample
	laptopErr error
}

func (f *fakeUsageStore) GetLaptopRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.LaptopSample, error) {
	return f.laptop, f.laptopErr
}

func (f *fakeUsageStore) GetMobileRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.MobileSample, error) {
	return f.mobile, nil
}

type fakePredictionStore struct {
	inserted  []*models.Prediction
	insertErr error
	recent    []models.Prediction
	latest    *models.Prediction
	latestErr error
}

func (f *fakePredictionStore) Insert(ctx context.Context, p *models.Prediction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return nil
}

func (f *fakePredictionStore) GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Prediction, error) {
	return f.recent, nil
}

func (f *fakePredictionStore) GetLatestByUser(ctx context.Context, userID string) (*models.Prediction, error) {
	return f.latest, f.latestErr
}

func newTestService(t *testing.T, usage *fakeUsageStore, store *fakePredictionStore) *PredictionService {
	t.Helper()

	classifier, err := mlmodel.NewClassifier(config.ModelConfig{})
	require.NoError(t, err)
	regressor, err := mlmodel.NewRegressor(config.ModelConfig{})
	require.NoError(t, err)

	bus := events.NewEventBus(100)
	t.Cleanup(bus.Close)

	return NewPredictionService(Deps{
		Usage:      usage,
		Store:      store,
		Normalizer: normalizer.New(normalizer.Config{}, nil),
		Extractor:  features.New(features.Config{}),
		Classifier: classifier,
		Regressor:  regressor,
		Insights:   insights.NewEngine(),
		Publisher:  events.NewPublisher(bus),
		Lookback:   24 * time.Hour,
	})
}

func recentSamples(now time.Time) ([]models.LaptopSample, []models.MobileSample) {
	laptop := []models.LaptopSample{
		{Timestamp: now.Add(-4 * time.Hour).Format(time.RFC3339), ActiveApp: "vs code", UsageDuration: 90},
		{Timestamp: now.Add(-2 * time.Hour).Format(time.RFC3339), ActiveApp: "chrome", UsageDuration: 60},
	}
	mobile := []models.MobileSample{
		{Timestamp: now.Add(-1 * time.Hour).Format(time.RFC3339), AppName: "instagram", ScreenTime: 45},
	}
	return laptop, mobile
}

func TestPredict_HappyPath(t *testing.T) {
	now := time.Now().UTC()
	laptop, mobile := recentSamples(now)
	usage := &fakeUsageStore{laptop: laptop, mobile: mobile}
	store := &fakePredictionStore{}
	svc := newTestService(t, usage, store)

	resp, err := svc.Predict(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, "42", resp.UserID)
	assert.False(t, resp.NotEnoughData)
	assert.GreaterOrEqual(t, resp.FatigueScore, 0.0)
	assert.LessOrEqual(t, resp.FatigueScore, 100.0)
	assert.GreaterOrEqual(t, resp.ProductivityLoss, 0.0)
	assert.NotEmpty(t, resp.ModelVersion)
	assert.Len(t, resp.Features, 8)
	assert.NotEmpty(t, resp.Metrics.RecommendedActions)
	assert.Equal(t, 3, resp.DataSummary.TotalRecords)

	require.Len(t, store.inserted, 1)
	stored := store.inserted[0]
	assert.Equal(t, "42", stored.UserID)
	assert.Equal(t, resp.FatigueScore, stored.FatigueScore)
	assert.Equal(t, resp.FatigueLevel, stored.FatigueLevel)
	assert.Equal(t, resp.ProductivityLoss, stored.ProductivityLoss)
	assert.Equal(t, resp.Confidence, stored.Confidence)
}

func TestPredict_EmptyWindow(t *testing.T) {
	usage := &fakeUsageStore{}
	store := &fakePredictionStore{}
	svc := newTestService(t, usage, store)

	resp, err := svc.Predict(context.Background(), "42")

	require.NoError(t, err)
	assert.True(t, resp.NotEnoughData)
	assert.Equal(t, models.FatigueLow, resp.FatigueLevel)
	assert.Equal(t, 0.0, resp.FatigueScore)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, store.inserted, "nothing is persisted without usable data")
}

func TestPredict_AllRecordsUnparsable(t *testing.T) {
	usage := &fakeUsageStore{
		laptop: []models.LaptopSample{
			{Timestamp: "garbage", ActiveApp: "vs code", UsageDuration: 60},
		},
	}
	store := &fakePredictionStore{}
	svc := newTestService(t, usage, store)

	resp, err := svc.Predict(context.Background(), "42")

	require.NoError(t, err)
	assert.True(t, resp.NotEnoughData)
	assert.Equal(t, 1, resp.DataSummary.DataQuality.DroppedRecords)
	assert.Empty(t, store.inserted)
}

func TestPredict_UsageStoreError(t *testing.T) {
	usage := &fakeUsageStore{laptopErr: errors.New("connection refused")}
	store := &fakePredictionStore{}
	svc := newTestService(t, usage, store)

	_, err := svc.Predict(context.Background(), "42")

	assert.Error(t, err)
	assert.Empty(t, store.inserted)
}

func TestPredict_InsertError(t *testing.T) {
	now := time.Now().UTC()
	laptop, mobile := recentSamples(now)
	usage := &fakeUsageStore{laptop: laptop, mobile: mobile}
	store := &fakePredictionStore{insertErr: errors.New("disk full")}
	svc := newTestService(t, usage, store)

	_, err := svc.Predict(context.Background(), "42")

	assert.Error(t, err)
}

func TestPredict_HeavyDayReachesExtractorIntact(t *testing.T) {
	now := time.Now().UTC()

	// A per-minute laptop tracker reports well over a thousand rows per
	// day; every one of them must make it into the analysis window.
	var laptop []models.LaptopSample
	for i := 0; i < 1440; i++ {
		laptop = append(laptop, models.LaptopSample{
			Timestamp:     now.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
			ActiveApp:     "vs code",
			UsageDuration: 1,
		})
	}
	usage := &fakeUsageStore{laptop: laptop}
	store := &fakePredictionStore{}
	svc := newTestService(t, usage, store)

	resp, err := svc.Predict(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 1440, resp.DataSummary.TotalRecords)
	assert.InDelta(t, 24.0, resp.Features[models.FeatureScreenTime], 0.01)
}

func TestPredict_HeavierUsageScoresHigher(t *testing.T) {
	now := time.Now().UTC()

	lightUsage := &fakeUsageStore{
		laptop: []models.LaptopSample{
			{Timestamp: now.Add(-3 * time.Hour).Format(time.RFC3339), ActiveApp: "vs code", UsageDuration: 60},
		},
	}

	var heavyLaptop []models.LaptopSample
	var heavyMobile []models.MobileSample
	for i := 0; i < 12; i++ {
		ts := now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)
		heavyLaptop = append(heavyLaptop, models.LaptopSample{Timestamp: ts, ActiveApp: "chrome", UsageDuration: 40})
		heavyMobile = append(heavyMobile, models.MobileSample{Timestamp: ts, AppName: "instagram", ScreenTime: 30})
	}
	heavyUsage := &fakeUsageStore{laptop: heavyLaptop, mobile: heavyMobile}

	svcLight := newTestService(t, lightUsage, &fakePredictionStore{})
	svcHeavy := newTestService(t, heavyUsage, &fakePredictionStore{})

	light, err := svcLight.Predict(context.Background(), "42")
	require.NoError(t, err)
	heavy, err := svcHeavy.Predict(context.Background(), "42")
	require.NoError(t, err)

	assert.Greater(t, heavy.FatigueScore, light.FatigueScore)
}

func TestHistoryAndLatest(t *testing.T) {
	stored := models.Prediction{UserID: "42", FatigueScore: 55}
	store := &fakePredictionStore{
		recent: []models.Prediction{stored},
		latest: &stored,
	}
	svc := newTestService(t, &fakeUsageStore{}, store)

	history, err := svc.History(context.Background(), "42", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	latest, err := svc.Latest(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 55.0, latest.FatigueScore)
}
