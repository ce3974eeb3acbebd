package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Insert(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions (created_at, user_id, fatigue_score, fatigue_level,
			productivity_loss, confidence, model_version,
			screen_time, avg_session, breaks, night_ratio,
			productive_ratio, social_ratio, entertainment_ratio, focus_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		p.CreatedAt, p.UserID, p.FatigueScore, p.FatigueLevel,
		p.ProductivityLoss, p.Confidence, p.ModelVersion,
		p.Features.ScreenTime, p.Features.AvgSession, p.Features.Breaks, p.Features.NightRatio,
		p.Features.ProductiveRatio, p.Features.SocialRatio, p.Features.EntertainmentRatio, p.Features.FocusScore,
	).Scan(&p.ID)
}

func (r *PredictionRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Prediction, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, created_at, user_id, fatigue_score, fatigue_level,
			productivity_loss, confidence, COALESCE(model_version, ''),
			screen_time, avg_session, breaks, night_ratio,
			productive_ratio, social_ratio, entertainment_ratio, focus_score
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		err := rows.Scan(&p.ID, &p.CreatedAt, &p.UserID, &p.FatigueScore, &p.FatigueLevel,
			&p.ProductivityLoss, &p.Confidence, &p.ModelVersion,
			&p.Features.ScreenTime, &p.Features.AvgSession, &p.Features.Breaks, &p.Features.NightRatio,
			&p.Features.ProductiveRatio, &p.Features.SocialRatio, &p.Features.EntertainmentRatio, &p.Features.FocusScore)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}

func (r *PredictionRepository) GetLatestByUser(ctx context.Context, userID string) (*models.Prediction, error) {
	query := `
		SELECT id, created_at, user_id, fatigue_score, fatigue_level,
			productivity_loss, confidence, COALESCE(model_version, ''),
			screen_time, avg_session, breaks, night_ratio,
			productive_ratio, social_ratio, entertainment_ratio, focus_score
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var p models.Prediction
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.CreatedAt, &p.UserID, &p.FatigueScore, &p.FatigueLevel,
		&p.ProductivityLoss, &p.Confidence, &p.ModelVersion,
		&p.Features.ScreenTime, &p.Features.AvgSession, &p.Features.Breaks, &p.Features.NightRatio,
		&p.Features.ProductiveRatio, &p.Features.SocialRatio, &p.Features.EntertainmentRatio, &p.Features.FocusScore,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPredictionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
