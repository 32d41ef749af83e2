package advisory

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var distancePattern = regexp.MustCompile(`, (\d+\.\d) km \(`)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func extractDistance(t *testing.T, route string) float64 {
	t.Helper()
	match := distancePattern.FindStringSubmatch(route)
	require.Len(t, match, 2, "distance not found in %q", route)
	km, err := strconv.ParseFloat(match[1], 64)
	require.NoError(t, err)
	return km
}

func TestHeuristicAnalyze_AccidentHigh(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(0, newTestLogger())
	incident := &models.Incident{ID: uuid.New(), Type: models.IncidentAccident, Severity: models.SeverityHigh}

	analysis := analyzer.Analyze(context.Background(), incident, nil)

	require.NotNil(t, analysis)
	assert.Equal(t, incident.ID, analysis.IncidentID)
	assert.True(t, len(analysis.AIMessage) > 0)
	assert.Regexp(t, `^🚨 Alert: `, analysis.AIMessage)
	assert.Contains(t, analysis.AIMessage, "Accident detected")
	assert.Contains(t, analysis.AIMessage, "2+ hours")

	assert.Contains(t, analysis.SafeRoute, "Outer Ring Road")
	assert.Contains(t, analysis.EcoRoute, "Sarjapur Road")
	assert.Contains(t, analysis.FastestRoute, "Electronic City Flyover")

	assert.InDelta(t, 12.5, extractDistance(t, analysis.SafeRoute), 2.5)
	assert.InDelta(t, 10, extractDistance(t, analysis.EcoRoute), 2)
	assert.InDelta(t, 8, extractDistance(t, analysis.FastestRoute), 2)
	assert.False(t, analysis.Timestamp.IsZero())
}

func TestHeuristicAnalyze_DistanceBounds(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		safe   string
		eco    string
		fast   string
	}{
		{name: "минимум", random: 0, safe: "10.0", eco: "8.0", fast: "6.0"},
		{name: "максимум", random: 1, safe: "15.0", eco: "12.0", fast: "10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewHeuristicAnalyzer(0, newTestLogger())
			analyzer.random = func() float64 { return tt.random }

			analysis := analyzer.Analyze(context.Background(), &models.Incident{Type: models.IncidentRoadWork, Severity: models.SeverityLow}, nil)

			assert.Contains(t, analysis.SafeRoute, tt.safe+" km (Safest, avoids high-risk zones)")
			assert.Contains(t, analysis.EcoRoute, tt.eco+" km (Eco-friendly, lower emissions)")
			assert.Contains(t, analysis.FastestRoute, tt.fast+" km (Quickest arrival time)")
		})
	}
}

func TestHeuristicAnalyze_SeverityPrefixes(t *testing.T) {
	tests := []struct {
		severity models.Severity
		prefix   string
	}{
		{severity: models.SeverityLow, prefix: "ℹ️ Advisory: "},
		{severity: models.SeverityMedium, prefix: "⚠️ Caution: "},
		{severity: models.SeverityHigh, prefix: "🚨 Alert: "},
	}

	analyzer := NewHeuristicAnalyzer(0, newTestLogger())
	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			analysis := analyzer.Analyze(context.Background(), &models.Incident{Type: models.IncidentTrafficJam, Severity: tt.severity}, nil)
			assert.Equal(t, tt.prefix+"Heavy congestion reported. Traffic density above normal. Consider alternate routes.", analysis.AIMessage)
		})
	}
}

func TestHeuristicAnalyze_RoutesPerType(t *testing.T) {
	tests := []struct {
		incidentType models.IncidentType
		safe         string
		eco          string
		fast         string
		body         string
	}{
		{models.IncidentTrafficJam, "Old Airport Road", "Double Road", "MG Road", "Heavy congestion reported."},
		{models.IncidentRoadWork, "Hennur Road", "Bellary Road", "Hebbal Flyover", "Road construction in progress."},
		{models.IncidentEmergency, "Hospital Route (NH-7)", "Inner Ring Road", "green wave activated", "EMERGENCY SITUATION!"},
	}

	analyzer := NewHeuristicAnalyzer(0, newTestLogger())
	for _, tt := range tests {
		t.Run(string(tt.incidentType), func(t *testing.T) {
			analysis := analyzer.Analyze(context.Background(), &models.Incident{Type: tt.incidentType, Severity: models.SeverityMedium}, nil)
			assert.Contains(t, analysis.SafeRoute, tt.safe)
			assert.Contains(t, analysis.EcoRoute, tt.eco)
			assert.Contains(t, analysis.FastestRoute, tt.fast)
			assert.Contains(t, analysis.AIMessage, tt.body)
		})
	}
}

func TestHeuristicAnalyze_UnknownTypeFallsBack(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(0, newTestLogger())
	incident := &models.Incident{Type: "flood", Severity: models.SeverityMedium}

	analysis := analyzer.Analyze(context.Background(), incident, nil)

	// Маршруты как для пробки, текст - общий
	assert.Contains(t, analysis.SafeRoute, "Old Airport Road")
	assert.Contains(t, analysis.EcoRoute, "Double Road")
	assert.Contains(t, analysis.FastestRoute, "MG Road")
	assert.Equal(t, "⚠️ Caution: Traffic disruption detected.", analysis.AIMessage)
}

func TestHeuristicAnalyze_UnknownSeverityHasNoPrefix(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(0, newTestLogger())

	analysis := analyzer.Analyze(context.Background(), &models.Incident{Type: "flood", Severity: "extreme"}, nil)

	assert.Equal(t, "Traffic disruption detected.", analysis.AIMessage)
}

func TestHeuristicAnalyze_MediumAccidentClearanceTime(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(0, newTestLogger())

	analysis := analyzer.Analyze(context.Background(), &models.Incident{Type: models.IncidentAccident, Severity: models.SeverityMedium}, nil)

	assert.Contains(t, analysis.AIMessage, "Estimated clearance time: 30-60 min.")
}

func TestHeuristicAnalyze_DelayRespectsCancellation(t *testing.T) {
	analyzer := NewHeuristicAnalyzer(time.Hour, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan *models.RouteAnalysis, 1)
	go func() {
		done <- analyzer.Analyze(ctx, &models.Incident{Type: models.IncidentAccident, Severity: models.SeverityLow}, nil)
	}()

	select {
	case analysis := <-done:
		assert.NotEmpty(t, analysis.SafeRoute)
	case <-time.After(5 * time.Second):
		t.Fatal("analysis did not return after context cancellation")
	}
}
