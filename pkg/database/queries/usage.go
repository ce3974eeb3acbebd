package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

type UsageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) InsertLaptop(ctx context.Context, at time.Time, s *models.LaptopSample) error {
	query := `
		INSERT INTO laptop_usage (time, device_id, user_id, active_app, usage_duration,
			session_length, idle_time, time_of_day, keystrokes, mouse_clicks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		at, s.DeviceID, s.UserID, s.ActiveApp, s.UsageDuration,
		s.SessionLength, s.IdleTime, s.TimeOfDay, s.Keystrokes, s.MouseClicks,
	)
	return err
}

func (r *UsageRepository) InsertMobile(ctx context.Context, at time.Time, s *models.MobileSample) error {
	query := `
		INSERT INTO mobile_usage (time, device_id, user_id, app_name, screen_time,
			category, notifications_received)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		at, s.DeviceID, s.UserID, s.AppName, s.ScreenTime,
		s.Category, s.NotificationsReceived,
	)
	return err
}

// rangeLimit maps the caller's limit onto the LIMIT argument. Zero and
// negative mean the whole range: lib/pq sends nil as NULL, and LIMIT NULL
// is unbounded in Postgres. A positive cap here would cut off the newest
// rows of a heavy tracker day, since range queries order oldest first.
func rangeLimit(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}

// GetLaptopRange returns laptop samples for a user within [from, to],
// oldest first. Timestamps are rendered back to RFC3339 so the rows feed
// the normalizer through the same schema the trackers report.
func (r *UsageRepository) GetLaptopRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.LaptopSample, error) {
	query := `
		SELECT time, device_id, user_id, active_app, usage_duration,
			session_length, idle_time, COALESCE(time_of_day, ''), keystrokes, mouse_clicks
		FROM laptop_usage
		WHERE user_id = $1 AND time >= $2 AND time <= $3
		ORDER BY time ASC
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to, rangeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.LaptopSample
	for rows.Next() {
		var s models.LaptopSample
		var at time.Time
		err := rows.Scan(&at, &s.DeviceID, &s.UserID, &s.ActiveApp, &s.UsageDuration,
			&s.SessionLength, &s.IdleTime, &s.TimeOfDay, &s.Keystrokes, &s.MouseClicks)
		if err != nil {
			return nil, err
		}
		s.Timestamp = at.Format(time.RFC3339Nano)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

func (r *UsageRepository) GetMobileRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.MobileSample, error) {
	query := `
		SELECT time, device_id, user_id, app_name, screen_time,
			COALESCE(category, ''), notifications_received
		FROM mobile_usage
		WHERE user_id = $1 AND time >= $2 AND time <= $3
		ORDER BY time ASC
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to, rangeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.MobileSample
	for rows.Next() {
		var s models.MobileSample
		var at time.Time
		err := rows.Scan(&at, &s.DeviceID, &s.UserID, &s.AppName, &s.ScreenTime,
			&s.Category, &s.NotificationsReceived)
		if err != nil {
			return nil, err
		}
		s.Timestamp = at.Format(time.RFC3339Nano)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

type UsageTotals struct {
	LaptopMinutes   float64 `json:"laptop_minutes"`
	MobileMinutes   float64 `json:"mobile_minutes"`
	TotalScreenTime float64 `json:"total_screen_time"`
}

func (r *UsageRepository) GetTotals(ctx context.Context, userID string, from, to time.Time) (*UsageTotals, error) {
	var totals UsageTotals

	laptopQuery := `
		SELECT COALESCE(SUM(usage_duration), 0)
		FROM laptop_usage
		WHERE user_id = $1 AND time >= $2 AND time <= $3`
	if err := r.db.QueryRowContext(ctx, laptopQuery, userID, from, to).Scan(&totals.LaptopMinutes); err != nil {
		return nil, err
	}

	mobileQuery := `
		SELECT COALESCE(SUM(screen_time), 0)
		FROM mobile_usage
		WHERE user_id = $1 AND time >= $2 AND time <= $3`
	if err := r.db.QueryRowContext(ctx, mobileQuery, userID, from, to).Scan(&totals.MobileMinutes); err != nil {
		return nil, err
	}

	totals.TotalScreenTime = totals.LaptopMinutes + totals.MobileMinutes
	return &totals, nil
}
