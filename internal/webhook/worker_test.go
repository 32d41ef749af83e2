package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg)
}

func testEvent() (WebhookEvent, string) {
	incident := &models.Incident{
		ID:       uuid.New(),
		Type:     models.IncidentAccident,
		Severity: models.SeverityHigh,
		Lat:      12.97,
		Lng:      77.59,
	}
	event := NewEmergencyEvent(incident, 70, 1)
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestDeliver_SignsPayload(t *testing.T) {
	var received atomic.Int32
	event, payload := testEvent()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, string(body))
		assert.Equal(t, generateHMACSHA256(payload, "secret"), r.Header.Get("X-Webhook-Signature"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL)
	ok := worker.deliver(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, int32(1), received.Load())
}

func TestDeliver_RetriesOnServerError(t *testing.T) {
	var attempts atomic.Int32
	event, payload := testEvent()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL)
	ok := worker.deliver(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	event, payload := testEvent()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL)
	ok := worker.deliver(context.Background(), event, payload)

	assert.False(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_NoURLConfigured(t *testing.T) {
	event, payload := testEvent()
	worker := newTestWorker("")

	assert.False(t, worker.deliver(context.Background(), event, payload))
}

func TestNewEmergencyEvent(t *testing.T) {
	event, payload := testEvent()

	assert.Equal(t, EventEmergencyOverride, event.Event)
	assert.Equal(t, 70, event.DensityThreshold)
	assert.Equal(t, int64(1), event.SignalsOverridden)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "accident", decoded["incident_type"])
	assert.Equal(t, "high", decoded["severity"])
}
