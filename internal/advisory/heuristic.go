package advisory

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shenikar/traffic_advisory_system/internal/metrics"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/sirupsen/logrus"
)

// incidentContext - оценка масштаба инцидента
type incidentContext struct {
	Urgency          string
	AreaAffected     string
	DurationEstimate string
}

// routeSet - три варианта объезда для одного типа инцидента
type routeSet struct {
	Safe string
	Eco  string
	Fast string
}

// distanceRange - границы декоративной дистанции в км
type distanceRange struct {
	Min float64
	Max float64
}

var (
	safeDistance = distanceRange{Min: 10, Max: 15}
	ecoDistance  = distanceRange{Min: 8, Max: 12}
	fastDistance = distanceRange{Min: 6, Max: 10}
)

// HeuristicAnalyzer строит рекомендации по статическим таблицам, без внешних вызовов
type HeuristicAnalyzer struct {
	delay  time.Duration
	random func() float64
	logger *logrus.Logger
}

func NewHeuristicAnalyzer(delay time.Duration, logger *logrus.Logger) *HeuristicAnalyzer {
	return &HeuristicAnalyzer{
		delay:  delay,
		random: rand.Float64,
		logger: logger,
	}
}

// Analyze никогда не возвращает ошибку
func (a *HeuristicAnalyzer) Analyze(ctx context.Context, incident *models.Incident, _ []*models.TrafficSignal) *models.RouteAnalysis {
	start := time.Now()
	defer func() {
		metrics.AdvisoryDuration.WithLabelValues(ModeHeuristic).Observe(time.Since(start).Seconds())
	}()

	a.wait(ctx)

	incCtx := analyzeContext(incident)
	routes := routesFor(incident.Type)

	a.logger.WithFields(logrus.Fields{
		"analyzer":    ModeHeuristic,
		"incident_id": incident.ID,
		"urgency":     incCtx.Urgency,
		"area":        incCtx.AreaAffected,
	}).Debug("Heuristic route analysis computed")

	return &models.RouteAnalysis{
		IncidentID:   incident.ID,
		SafeRoute:    fmt.Sprintf("%s, %s km (Safest, avoids high-risk zones)", routes.Safe, a.distance(safeDistance)),
		EcoRoute:     fmt.Sprintf("%s, %s km (Eco-friendly, lower emissions)", routes.Eco, a.distance(ecoDistance)),
		FastestRoute: fmt.Sprintf("%s, %s km (Quickest arrival time)", routes.Fast, a.distance(fastDistance)),
		AIMessage:    severityPrefix(incident.Severity) + messageBody(incident.Type, incCtx),
		Timestamp:    time.Now().UTC(),
	}
}

// wait имитирует асинхронную работу, не блокируя отмену запроса
func (a *HeuristicAnalyzer) wait(ctx context.Context) {
	if a.delay <= 0 {
		return
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (a *HeuristicAnalyzer) distance(r distanceRange) string {
	km := r.Min + a.random()*(r.Max-r.Min)
	km = math.Round(km*10) / 10
	return strconv.FormatFloat(km, 'f', 1, 64)
}

func analyzeContext(incident *models.Incident) incidentContext {
	c := incidentContext{
		Urgency:          "low",
		AreaAffected:     "moderate",
		DurationEstimate: "30-60 min",
	}

	switch incident.Severity {
	case models.SeverityHigh:
		c.Urgency = "high"
		c.DurationEstimate = "2+ hours"
	case models.SeverityMedium:
		c.Urgency = "medium"
	}

	switch incident.Type {
	case models.IncidentAccident, models.IncidentEmergency:
		c.AreaAffected = "major"
	}
	return c
}

// routesFor возвращает варианты объезда; неизвестный тип обрабатывается как пробка
func routesFor(t models.IncidentType) routeSet {
	switch t {
	case models.IncidentAccident:
		return routeSet{
			Safe: "via Outer Ring Road (avoiding accident zone)",
			Eco:  "via Sarjapur Road (tree-lined route)",
			Fast: "via Electronic City Flyover",
		}
	case models.IncidentRoadWork:
		return routeSet{
			Safe: "via Hennur Road",
			Eco:  "via Bellary Road",
			Fast: "via Hebbal Flyover",
		}
	case models.IncidentEmergency:
		return routeSet{
			Safe: "via Hospital Route (NH-7)",
			Eco:  "via Inner Ring Road",
			Fast: "via Elevated Highway (green wave activated)",
		}
	case models.IncidentTrafficJam:
		fallthrough
	default:
		return routeSet{
			Safe: "via Old Airport Road",
			Eco:  "via Double Road",
			Fast: "via MG Road",
		}
	}
}

func severityPrefix(s models.Severity) string {
	switch s {
	case models.SeverityLow:
		return "ℹ️ Advisory: "
	case models.SeverityMedium:
		return "⚠️ Caution: "
	case models.SeverityHigh:
		return "🚨 Alert: "
	default:
		return ""
	}
}

func messageBody(t models.IncidentType, c incidentContext) string {
	switch t {
	case models.IncidentAccident:
		return fmt.Sprintf("Accident detected at location. Estimated clearance time: %s. Emergency services en route.", c.DurationEstimate)
	case models.IncidentTrafficJam:
		return "Heavy congestion reported. Traffic density above normal. Consider alternate routes."
	case models.IncidentRoadWork:
		return "Road construction in progress. Lane restrictions active. Plan additional travel time."
	case models.IncidentEmergency:
		return "EMERGENCY SITUATION! Avoid area immediately. Traffic signals adjusted for emergency vehicles."
	default:
		return "Traffic disruption detected."
	}
}
