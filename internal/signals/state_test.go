package signals

import (
	"testing"

	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_EmergencyAlwaysGreen(t *testing.T) {
	for _, density := range []int{-50, 0, 50, 51, 80, 81, 100, 1000} {
		assert.Equal(t, models.SignalGreen, Classify(density, true), "density %d", density)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		density  int
		expected models.SignalState
	}{
		{density: 81, expected: models.SignalRed},
		{density: 80, expected: models.SignalYellow},
		{density: 51, expected: models.SignalYellow},
		{density: 50, expected: models.SignalGreen},
		{density: 0, expected: models.SignalGreen},
		{density: -10, expected: models.SignalGreen},
		{density: 250, expected: models.SignalRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.density, false), "density %d", tt.density)
	}
}

func TestSeeds(t *testing.T) {
	seeds := Seeds()
	assert.Len(t, seeds, 5)

	ids := make(map[string]bool)
	for _, s := range seeds {
		assert.False(t, ids[s.SignalID], "duplicate signal id %s", s.SignalID)
		ids[s.SignalID] = true
	}

	// Seeds отдает новые значения при каждом вызове
	seeds[0].TrafficDensity = 99
	assert.Equal(t, 45, Seeds()[0].TrafficDensity)

	silk := seeds[4]
	assert.Equal(t, "SILK_BOARD", silk.SignalID)
	assert.Equal(t, 85, silk.TrafficDensity)
	assert.Equal(t, models.SignalRed, silk.CurrentState)
}
