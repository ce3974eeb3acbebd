package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

var ErrDeviceNotFound = errors.New("device not found")

type DeviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (id, user_id, name, device_class, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		device.ID, device.UserID, device.Name, device.Class, device.Status,
	).Scan(&device.CreatedAt)
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*models.Device, error) {
	query := `
		SELECT id, user_id, name, device_class, status, created_at, last_active
		FROM devices WHERE id = $1`

	var d models.Device
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Class, &d.Status, &d.CreatedAt, &d.LastActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DeviceRepository) ListByUser(ctx context.Context, userID string) ([]models.Device, error) {
	query := `
		SELECT id, user_id, name, device_class, status, created_at, last_active
		FROM devices WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Class, &d.Status, &d.CreatedAt, &d.LastActive)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

func (r *DeviceRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE devices SET last_active = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, at)
	return err
}

func (r *DeviceRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM devices WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
