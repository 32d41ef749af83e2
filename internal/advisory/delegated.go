package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/traffic_advisory_system/internal/metrics"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// coordinateOffset - смещение в градусах для синтетических точек начала и конца маршрута
	coordinateOffset = 0.02

	ecoRoutePlaceholder     = "Eco-friendly route suggestion based on current density."
	fastestRoutePlaceholder = "Fastest route with least congestion delay."
	emptyAIResponse         = "No response from AI model."
)

// DelegatedAnalyzer передает анализ внешним сервисам.
// Ошибки сервисов превращаются в текст ответа и никогда не возвращаются вызывающему.
type DelegatedAnalyzer struct {
	generator TextGenerator
	planner   RoutePlanner
	logger    *logrus.Logger
}

func NewDelegatedAnalyzer(generator TextGenerator, planner RoutePlanner, logger *logrus.Logger) *DelegatedAnalyzer {
	return &DelegatedAnalyzer{
		generator: generator,
		planner:   planner,
		logger:    logger,
	}
}

func (a *DelegatedAnalyzer) Analyze(ctx context.Context, incident *models.Incident, snapshot []*models.TrafficSignal) *models.RouteAnalysis {
	start := time.Now()
	defer func() {
		metrics.AdvisoryDuration.WithLabelValues(ModeDelegated).Observe(time.Since(start).Seconds())
	}()

	log := a.logger.WithFields(logrus.Fields{
		"analyzer":    ModeDelegated,
		"incident_id": incident.ID,
	})

	routeSummary := a.planRoute(ctx, incident, log)
	aiMessage := a.askModel(ctx, buildPrompt(incident, snapshot), log)

	return &models.RouteAnalysis{
		IncidentID:   incident.ID,
		SafeRoute:    "ORS safe route: " + routeSummary,
		EcoRoute:     ecoRoutePlaceholder,
		FastestRoute: fastestRoutePlaceholder,
		AIMessage:    aiMessage,
		Timestamp:    time.Now().UTC(),
	}
}

func (a *DelegatedAnalyzer) planRoute(ctx context.Context, incident *models.Incident, log *logrus.Entry) string {
	startPoint, endPoint := boundingPair(incident)

	geometry, err := a.planner.Route(ctx, startPoint, endPoint, DrivingProfile)
	if err != nil {
		metrics.AdvisoryDegraded.WithLabelValues("routing").Inc()
		log.WithError(err).Warn("Routing service call failed")
		return fmt.Sprintf("OpenRouteService error: %v", err)
	}

	log.WithFields(logrus.Fields{
		"distance_m": geometry.DistanceMeters,
		"points":     len(geometry.Coordinates),
	}).Debug("Routing service returned geometry")
	return "Route generated successfully using ORS"
}

func (a *DelegatedAnalyzer) askModel(ctx context.Context, prompt string, log *logrus.Entry) string {
	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.AdvisoryDegraded.WithLabelValues("ai").Inc()
		log.WithError(err).Warn("AI text generation failed")
		return fmt.Sprintf("Error with AI API: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return emptyAIResponse
	}
	return text
}

// boundingPair строит начало и конец маршрута вокруг точки инцидента
func boundingPair(incident *models.Incident) (Coordinate, Coordinate) {
	start := Coordinate{Lng: incident.Lng - coordinateOffset, Lat: incident.Lat - coordinateOffset}
	end := Coordinate{Lng: incident.Lng + coordinateOffset, Lat: incident.Lat + coordinateOffset}
	return start, end
}

func buildPrompt(incident *models.Incident, snapshot []*models.TrafficSignal) string {
	var b strings.Builder
	b.WriteString("Traffic Incident Analysis:\n")
	fmt.Fprintf(&b, "Type: %s\n", incident.Type)
	fmt.Fprintf(&b, "Severity: %s\n", incident.Severity)
	fmt.Fprintf(&b, "Location: Lat %v, Lng %v\n", incident.Lat, incident.Lng)
	fmt.Fprintf(&b, "Description: %s\n\n", incident.Description)

	b.WriteString("Analyze this incident and suggest:\n")
	b.WriteString("1. Safest alternate route (avoiding high-risk areas)\n")
	b.WriteString("2. Most eco-friendly route (lower emissions)\n")
	b.WriteString("3. Fastest route (quickest arrival)\n\n")
	b.WriteString("Consider traffic density and emergency vehicle priority.\n")

	if len(snapshot) > 0 {
		b.WriteString("\nCurrent traffic signals:\n")
		for _, s := range snapshot {
			fmt.Fprintf(&b, "- %s (%s): %s, density %d\n", s.SignalID, s.Location, s.CurrentState, s.TrafficDensity)
		}
	}
	return b.String()
}
