package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentType - категория инцидента
type IncidentType string

const (
	IncidentAccident   IncidentType = "accident"
	IncidentTrafficJam IncidentType = "traffic_jam"
	IncidentRoadWork   IncidentType = "road_work"
	IncidentEmergency  IncidentType = "emergency"
)

// Severity - уровень серьезности инцидента
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	// StatusDegraded выставляется, если анализ маршрутов не удалось сохранить
	StatusDegraded = "degraded"

	DefaultReporterName = "Anonymous"
)

type Incident struct {
	ID           uuid.UUID    `json:"id"`
	Type         IncidentType `json:"type"`
	Severity     Severity     `json:"severity"`
	Description  string       `json:"description"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
	PhotoURL     *string      `json:"photo_url,omitempty"`
	ReporterName string       `json:"reporter_name"`
	Status       string       `json:"status"`
	Timestamp    time.Time    `json:"timestamp"`
}

// IncidentStats - агрегированные счетчики инцидентов
type IncidentStats struct {
	TotalIncidents    int `json:"total_incidents"`
	ActiveIncidents   int `json:"active_incidents"`
	HighSeverityCount int `json:"high_severity_count"`
}

// IncidentFilter - фильтр для подсчета инцидентов, пустые поля не учитываются
type IncidentFilter struct {
	Status   string
	Severity Severity
}
