package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/service"
)

type SignalRepository struct {
	db *pgxpool.Pool
}

func NewSignalRepository(db *pgxpool.Pool) service.SignalRepository {
	return &SignalRepository{db: db}
}

// Upsert создает светофор или полностью перезаписывает существующий с тем же signal_id
func (r *SignalRepository) Upsert(ctx context.Context, signal *models.TrafficSignal) error {
	query := `
		INSERT INTO traffic_signals (signal_id, location, lat, lng, current_state, traffic_density, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (signal_id) DO UPDATE SET
			location = EXCLUDED.location,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			current_state = EXCLUDED.current_state,
			traffic_density = EXCLUDED.traffic_density,
			last_updated = EXCLUDED.last_updated;
	`
	_, err := r.db.Exec(ctx, query,
		signal.SignalID,
		signal.Location,
		signal.Lat,
		signal.Lng,
		signal.CurrentState,
		signal.TrafficDensity,
		signal.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert traffic signal: %w", err)
	}
	return nil
}

// List возвращает не более limit светофоров
func (r *SignalRepository) List(ctx context.Context, limit int) ([]*models.TrafficSignal, error) {
	query := `
		SELECT signal_id, location, lat, lng, current_state, traffic_density, last_updated
		FROM traffic_signals
		ORDER BY signal_id
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list traffic signals: %w", err)
	}
	defer rows.Close()

	list := make([]*models.TrafficSignal, 0)
	for rows.Next() {
		s := &models.TrafficSignal{}
		err := rows.Scan(
			&s.SignalID,
			&s.Location,
			&s.Lat,
			&s.Lng,
			&s.CurrentState,
			&s.TrafficDensity,
			&s.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan traffic signal row: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return list, nil
}

// UpdateState выставляет цвет и плотность одному светофору
func (r *SignalRepository) UpdateState(ctx context.Context, signalID string, state models.SignalState, density int) error {
	query := `
		UPDATE traffic_signals SET
			current_state = $1,
			traffic_density = $2,
			last_updated = NOW()
		WHERE signal_id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, state, density, signalID)
	if err != nil {
		return fmt.Errorf("failed to update traffic signal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("traffic signal %s: %w", signalID, models.ErrNotFound)
	}
	return nil
}

// SetStateAboveDensity - одно массовое обновление, плотность не меняется
func (r *SignalRepository) SetStateAboveDensity(ctx context.Context, threshold int, state models.SignalState) (int64, error) {
	query := `
		UPDATE traffic_signals SET
			current_state = $1,
			last_updated = NOW()
		WHERE traffic_density > $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, state, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to override traffic signals: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
