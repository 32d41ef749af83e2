// Package events публикует доменные события инцидентов и светофоров во внешнюю шину.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/models"
)

const (
	TypeIncidentReported   = "incident.reported"
	TypeSignalStateChanged = "signal.state_changed"

	ReasonSimulation        = "simulation"
	ReasonEmergencyOverride = "emergency_override"
	ReasonInitialization    = "initialization"
)

// IncidentEvent - событие о новом инциденте
type IncidentEvent struct {
	Type       string           `json:"type"`
	IncidentID uuid.UUID        `json:"incident_id"`
	Incident   *models.Incident `json:"incident"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// SignalEvent - событие об изменении состояния светофоров.
// Для массовых операций SignalID пустой, а Affected содержит число затронутых записей.
type SignalEvent struct {
	Type       string             `json:"type"`
	SignalID   string             `json:"signal_id,omitempty"`
	State      models.SignalState `json:"state"`
	Density    *int               `json:"density,omitempty"`
	Affected   int64              `json:"affected"`
	Reason     string             `json:"reason"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher - интерфейс публикации событий
type Publisher interface {
	PublishIncident(ctx context.Context, event IncidentEvent) error
	PublishSignal(ctx context.Context, event SignalEvent) error
	Close() error
}

// NoopPublisher используется, когда шина не настроена
type NoopPublisher struct{}

func (NoopPublisher) PublishIncident(context.Context, IncidentEvent) error { return nil }

func (NoopPublisher) PublishSignal(context.Context, SignalEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// NewIncidentEvent собирает событие о зарегистрированном инциденте
func NewIncidentEvent(incident *models.Incident) IncidentEvent {
	return IncidentEvent{
		Type:       TypeIncidentReported,
		IncidentID: incident.ID,
		Incident:   incident,
		OccurredAt: time.Now().UTC(),
	}
}

// NewSignalEvent собирает событие об изменении светофора(ов)
func NewSignalEvent(signalID string, state models.SignalState, density *int, affected int64, reason string) SignalEvent {
	return SignalEvent{
		Type:       TypeSignalStateChanged,
		SignalID:   signalID,
		State:      state,
		Density:    density,
		Affected:   affected,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
