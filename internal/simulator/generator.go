package simulator

import (
	"math/rand"
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// App name pools per category, split by device class. Names are lowercase
// because that is what real trackers report after normalization anyway.
var laptopApps = map[string][]string{
	"productive":    {"excel", "word", "google docs", "outlook"},
	"development":   {"vs code", "pycharm", "terminal", "intellij"},
	"communication": {"slack", "teams", "zoom"},
	"social":        {"twitter", "facebook"},
	"entertainment": {"youtube", "netflix", "spotify"},
	"other":         {"finder", "settings", "calculator"},
}

var mobileApps = map[string][]string{
	"productive":    {"gmail", "google docs"},
	"development":   {"termux"},
	"communication": {"whatsapp", "telegram"},
	"social":        {"instagram", "tiktok", "twitter", "snapchat"},
	"entertainment": {"youtube", "netflix", "spotify", "games"},
	"other":         {"camera", "maps", "clock"},
}

type Generator struct {
	profile Profile
	rng     *rand.Rand
}

func NewGenerator(profile Profile, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Tick generates the samples for one reporting interval ending at now.
// Roughly 70% of simulated minutes land on the laptop during work-like
// hours, the rest on mobile.
func (g *Generator) Tick(laptopDeviceID, mobileDeviceID string, now time.Time, interval time.Duration) ([]models.LaptopSample, []models.MobileSample) {
	hour := now.Hour()
	activity := g.profile.Activity(hour)
	if activity <= 0 {
		return nil, nil
	}

	totalMinutes := interval.Minutes() * activity * (0.85 + g.rng.Float64()*0.3)
	if totalMinutes < 1 {
		return nil, nil
	}

	laptopShare := 0.7
	if g.profile.Mix(hour).Social+g.profile.Mix(hour).Entertainment > g.profile.Mix(hour).Productive+g.profile.Mix(hour).Development {
		laptopShare = 0.3
	}

	var laptop []models.LaptopSample
	var mobile []models.MobileSample

	laptopMinutes := totalMinutes * laptopShare
	mobileMinutes := totalMinutes - laptopMinutes

	for laptopMinutes > 0.5 {
		chunk := g.chunk(laptopMinutes)
		category := g.profile.Mix(hour).pick(g.rng)
		laptop = append(laptop, models.LaptopSample{
			DeviceID:      laptopDeviceID,
			Timestamp:     g.jitterTimestamp(now, interval),
			ActiveApp:     g.pickApp(laptopApps, category),
			UsageDuration: chunk,
			SessionLength: chunk,
			IdleTime:      g.rng.Float64() * 2,
			Keystrokes:    g.rng.Intn(2000),
			MouseClicks:   g.rng.Intn(400),
		})
		laptopMinutes -= chunk
	}

	for mobileMinutes > 0.5 {
		chunk := g.chunk(mobileMinutes)
		category := g.profile.Mix(hour).pick(g.rng)
		mobile = append(mobile, models.MobileSample{
			DeviceID:              mobileDeviceID,
			Timestamp:             g.jitterTimestamp(now, interval),
			AppName:               g.pickApp(mobileApps, category),
			ScreenTime:            chunk,
			Category:              category,
			NotificationsReceived: g.rng.Intn(20),
		})
		mobileMinutes -= chunk
	}

	return laptop, mobile
}

func (g *Generator) chunk(remaining float64) float64 {
	chunk := 3 + g.rng.Float64()*12
	if chunk > remaining {
		chunk = remaining
	}
	return chunk
}

func (g *Generator) pickApp(pool map[string][]string, category string) string {
	apps := pool[category]
	if len(apps) == 0 {
		apps = pool["other"]
	}
	return apps[g.rng.Intn(len(apps))]
}

func (g *Generator) jitterTimestamp(now time.Time, interval time.Duration) string {
	offset := time.Duration(g.rng.Int63n(int64(interval)))
	return now.Add(-offset).Format(time.RFC3339)
}
