package models

import (
	"time"

	"github.com/google/uuid"
)

// RouteAnalysis - рекомендации по объезду для одного инцидента
type RouteAnalysis struct {
	IncidentID   uuid.UUID `json:"incident_id"`
	SafeRoute    string    `json:"safe_route"`
	EcoRoute     string    `json:"eco_route"`
	FastestRoute string    `json:"fastest_route"`
	AIMessage    string    `json:"ai_message"`
	Timestamp    time.Time `json:"timestamp"`
}
