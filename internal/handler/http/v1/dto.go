package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Type         string   `json:"type" validate:"required,max=64" example:"accident"`
	Severity     string   `json:"severity" validate:"required,oneof=low medium high" example:"high"`
	Description  string   `json:"description" validate:"required,max=2000"`
	Lat          *float64 `json:"lat" validate:"required,latitude" example:"12.9172"`
	Lng          *float64 `json:"lng" validate:"required,longitude" example:"77.6229"`
	PhotoURL     *string  `json:"photo_url,omitempty" validate:"omitempty,url"`
	ReporterName string   `json:"reporter_name,omitempty" validate:"max=255"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	Description  string    `json:"description"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	ReporterName string    `json:"reporter_name"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// RouteAnalysisResponse DTO с рекомендациями по объезду
// @Description DTO с рекомендациями по объезду
type RouteAnalysisResponse struct {
	IncidentID   uuid.UUID `json:"incident_id"`
	SafeRoute    string    `json:"safe_route"`
	EcoRoute     string    `json:"eco_route"`
	FastestRoute string    `json:"fastest_route"`
	AIMessage    string    `json:"ai_message"`
	Timestamp    time.Time `json:"timestamp"`
}

// TrafficSignalResponse DTO состояния светофора
// @Description DTO состояния светофора
type TrafficSignalResponse struct {
	SignalID       string    `json:"signal_id"`
	Location       string    `json:"location"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	CurrentState   string    `json:"current_state"`
	TrafficDensity int       `json:"traffic_density"`
	LastUpdated    time.Time `json:"last_updated"`
}

// InitializeSignalsResponse DTO ответа на инициализацию светофоров
type InitializeSignalsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SimulateTrafficRequest DTO для симуляции трафика
// @Description DTO для симуляции трафика
type SimulateTrafficRequest struct {
	RoadID                   string  `json:"road_id" validate:"required" example:"SILK_BOARD"`
	TrafficDensity           *int    `json:"traffic_density" validate:"required" example:"85"`
	AvgSpeed                 float64 `json:"avg_speed"`
	EmergencyVehicleDetected bool    `json:"emergency_vehicle_detected"`
}

// SimulateTrafficResponse DTO с новым состоянием светофора
type SimulateTrafficResponse struct {
	SignalID string `json:"signal_id"`
	NewState string `json:"new_state"`
	Density  int    `json:"density"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	TotalIncidents    int `json:"total_incidents"`
	ActiveIncidents   int `json:"active_incidents"`
	HighSeverityCount int `json:"high_severity_count"`
}

// PhotoUploadResponse DTO со ссылкой на загруженную фотографию
type PhotoUploadResponse struct {
	PhotoURL string `json:"photo_url"`
}

// RootResponse - баннер сервиса
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
