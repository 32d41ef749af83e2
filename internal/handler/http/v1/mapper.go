package v1

import (
	"strings"

	"github.com/shenikar/traffic_advisory_system/internal/models"
)

// DTOToIncidentModel преобразует DTO создания в доменную модель.
// ID, статус и время проставляет сервис.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	incident := &models.Incident{
		Type:         models.IncidentType(strings.ToLower(strings.TrimSpace(dto.Type))),
		Severity:     models.Severity(dto.Severity),
		Description:  dto.Description,
		ReporterName: strings.TrimSpace(dto.ReporterName),
		PhotoURL:     dto.PhotoURL,
	}
	if dto.Lat != nil {
		incident.Lat = *dto.Lat
	}
	if dto.Lng != nil {
		incident.Lng = *dto.Lng
	}
	return incident
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           model.ID,
		Type:         string(model.Type),
		Severity:     string(model.Severity),
		Description:  model.Description,
		Lat:          model.Lat,
		Lng:          model.Lng,
		PhotoURL:     model.PhotoURL,
		ReporterName: model.ReporterName,
		Status:       model.Status,
		Timestamp:    model.Timestamp,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(list []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(list))
	for i, model := range list {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelToRouteAnalysisResponse(model *models.RouteAnalysis) *RouteAnalysisResponse {
	return &RouteAnalysisResponse{
		IncidentID:   model.IncidentID,
		SafeRoute:    model.SafeRoute,
		EcoRoute:     model.EcoRoute,
		FastestRoute: model.FastestRoute,
		AIMessage:    model.AIMessage,
		Timestamp:    model.Timestamp,
	}
}

func ModelsToSignalResponses(list []*models.TrafficSignal) []*TrafficSignalResponse {
	responses := make([]*TrafficSignalResponse, len(list))
	for i, s := range list {
		responses[i] = &TrafficSignalResponse{
			SignalID:       s.SignalID,
			Location:       s.Location,
			Lat:            s.Lat,
			Lng:            s.Lng,
			CurrentState:   string(s.CurrentState),
			TrafficDensity: s.TrafficDensity,
			LastUpdated:    s.LastUpdated,
		}
	}
	return responses
}

func ModelToStatsResponse(stats *models.IncidentStats) StatsResponse {
	return StatsResponse{
		TotalIncidents:    stats.TotalIncidents,
		ActiveIncidents:   stats.ActiveIncidents,
		HighSeverityCount: stats.HighSeverityCount,
	}
}
