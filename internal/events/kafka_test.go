package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter запоминает записанные сообщения вместо отправки в брокер
type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func newTestPublisher() (*KafkaPublisher, *recordingWriter, *recordingWriter) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	incidents, signals := &recordingWriter{}, &recordingWriter{}
	return &KafkaPublisher{incidents: incidents, signals: signals, logger: logger}, incidents, signals
}

func TestPublishIncident_KeyedByIncidentID(t *testing.T) {
	publisher, incidents, signals := newTestPublisher()
	incident := &models.Incident{ID: uuid.New(), Type: models.IncidentRoadWork, Severity: models.SeverityLow}

	err := publisher.PublishIncident(context.Background(), NewIncidentEvent(incident))
	require.NoError(t, err)

	require.Len(t, incidents.messages, 1)
	assert.Empty(t, signals.messages)
	assert.Equal(t, incident.ID.String(), string(incidents.messages[0].Key))

	var decoded IncidentEvent
	require.NoError(t, json.Unmarshal(incidents.messages[0].Value, &decoded))
	assert.Equal(t, TypeIncidentReported, decoded.Type)
	assert.Equal(t, incident.ID, decoded.IncidentID)
}

func TestPublishSignal_BulkEventUsesReasonAsKey(t *testing.T) {
	publisher, _, signals := newTestPublisher()

	err := publisher.PublishSignal(context.Background(), NewSignalEvent("", models.SignalGreen, nil, 2, ReasonEmergencyOverride))
	require.NoError(t, err)

	require.Len(t, signals.messages, 1)
	assert.Equal(t, ReasonEmergencyOverride, string(signals.messages[0].Key))
}

func TestPublishSignal_WriterError(t *testing.T) {
	publisher, _, signals := newTestPublisher()
	signals.err = errors.New("broker unavailable")
	density := 90

	err := publisher.PublishSignal(context.Background(), NewSignalEvent("SILK_BOARD", models.SignalRed, &density, 1, ReasonSimulation))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestClose_ClosesBothWriters(t *testing.T) {
	publisher, incidents, signals := newTestPublisher()

	require.NoError(t, publisher.Close())
	assert.True(t, incidents.closed)
	assert.True(t, signals.closed)
}

// stalledWriter имитирует недоступный брокер: ждет отмены контекста
type stalledWriter struct {
	hadDeadline bool
}

func (w *stalledWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	_, w.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (w *stalledWriter) Close() error { return nil }

func TestPublishIncident_BrokerUnavailableTimesOut(t *testing.T) {
	publisher, _, _ := newTestPublisher()
	stalled := &stalledWriter{}
	publisher.incidents = stalled
	publisher.timeout = 50 * time.Millisecond
	incident := &models.Incident{ID: uuid.New()}

	start := time.Now()
	err := publisher.PublishIncident(context.Background(), NewIncidentEvent(incident))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, stalled.hadDeadline)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewWriter_BoundedRetries(t *testing.T) {
	w := newWriter([]string{"localhost:9092"}, "incidents")
	defer w.Close()

	assert.Equal(t, maxAttempts, w.MaxAttempts)
	assert.Equal(t, publishTimeout, w.WriteTimeout)
	assert.False(t, w.Async)
}
