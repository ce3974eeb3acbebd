package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/logger"
	"github.com/OldStager01/fatigue-monitor/internal/resilience"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// Reporter pushes generated telemetry batches to the ingestion API. A
// circuit breaker keeps a dead endpoint from being hammered every tick.
type Reporter struct {
	baseURL string
	token   string
	client  *http.Client
	breaker *resilience.CircuitBreaker
}

func NewReporter(baseURL, token string) *Reporter {
	return &Reporter{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:        "usage-reporter",
			MaxFailures: 5,
			CoolOff:     30 * time.Second,
		}),
	}
}

func (r *Reporter) Report(ctx context.Context, laptop []models.LaptopSample, mobile []models.MobileSample) error {
	if len(laptop) > 0 {
		if err := r.post(ctx, "/usage/laptop", map[string]interface{}{"samples": laptop}); err != nil {
			return err
		}
	}
	if len(mobile) > 0 {
		if err := r.post(ctx, "/usage/mobile", map[string]interface{}{"samples": mobile}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) post(ctx context.Context, path string, payload interface{}) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+r.token)

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("ingestion returned status %d", resp.StatusCode)
		}
		return nil
	})
}

// Login exchanges credentials for a bearer token using the same API.
func Login(ctx context.Context, baseURL, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// Runner drives a generator on a fixed interval until the context ends.
type Runner struct {
	generator      *Generator
	reporter       *Reporter
	laptopDeviceID string
	mobileDeviceID string
	interval       time.Duration
}

func NewRunner(generator *Generator, reporter *Reporter, laptopDeviceID, mobileDeviceID string, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Runner{
		generator:      generator,
		reporter:       reporter,
		laptopDeviceID: laptopDeviceID,
		mobileDeviceID: mobileDeviceID,
		interval:       interval,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			laptop, mobile := r.generator.Tick(r.laptopDeviceID, r.mobileDeviceID, now, r.interval)
			if len(laptop) == 0 && len(mobile) == 0 {
				continue
			}

			if err := r.reporter.Report(ctx, laptop, mobile); err != nil {
				if err == resilience.ErrCircuitOpen {
					logger.Warn("Reporter circuit open, skipping tick")
					continue
				}
				logger.Errorf("Failed to report usage batch: %v", err)
				continue
			}

			logger.Debugf("Reported %d laptop and %d mobile samples", len(laptop), len(mobile))
		}
	}
}
