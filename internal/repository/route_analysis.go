package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/service"
)

type RouteAnalysisRepository struct {
	db *pgxpool.Pool
}

func NewRouteAnalysisRepository(db *pgxpool.Pool) service.RouteAnalysisRepository {
	return &RouteAnalysisRepository{db: db}
}

// Upsert сохраняет анализ; повторный анализ того же инцидента заменяет предыдущий
func (r *RouteAnalysisRepository) Upsert(ctx context.Context, analysis *models.RouteAnalysis) error {
	query := `
		INSERT INTO route_analyses (incident_id, safe_route, eco_route, fastest_route, ai_message, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (incident_id) DO UPDATE SET
			safe_route = EXCLUDED.safe_route,
			eco_route = EXCLUDED.eco_route,
			fastest_route = EXCLUDED.fastest_route,
			ai_message = EXCLUDED.ai_message,
			timestamp = EXCLUDED.timestamp;
	`
	_, err := r.db.Exec(ctx, query,
		analysis.IncidentID,
		analysis.SafeRoute,
		analysis.EcoRoute,
		analysis.FastestRoute,
		analysis.AIMessage,
		analysis.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert route analysis: %w", err)
	}
	return nil
}

// GetByIncidentID возвращает анализ маршрутов по ID инцидента
func (r *RouteAnalysisRepository) GetByIncidentID(ctx context.Context, incidentID uuid.UUID) (*models.RouteAnalysis, error) {
	query := `
		SELECT incident_id, safe_route, eco_route, fastest_route, ai_message, timestamp
		FROM route_analyses
		WHERE incident_id = $1;
	`
	analysis := &models.RouteAnalysis{}
	err := r.db.QueryRow(ctx, query, incidentID).Scan(
		&analysis.IncidentID,
		&analysis.SafeRoute,
		&analysis.EcoRoute,
		&analysis.FastestRoute,
		&analysis.AIMessage,
		&analysis.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("route analysis for incident %s: %w", incidentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get route analysis: %w", err)
	}
	return analysis, nil
}
