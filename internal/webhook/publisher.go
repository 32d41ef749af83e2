package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/traffic_advisory_system/internal/models"
)

const (
	webhookQueueKey = "webhook:emergency_events"

	EventEmergencyOverride = "emergency_override"
)

// WebhookEvent - данные вебхука об экстренном переключении светофоров
type WebhookEvent struct {
	Event             string          `json:"event"`
	IncidentID        uuid.UUID       `json:"incident_id"`
	IncidentType      string          `json:"incident_type"`
	Severity          models.Severity `json:"severity"`
	Lat               float64         `json:"lat"`
	Lng               float64         `json:"lng"`
	DensityThreshold  int             `json:"density_threshold"`
	SignalsOverridden int64           `json:"signals_overridden"`
	Timestamp         time.Time       `json:"timestamp"`
}

// NewEmergencyEvent собирает событие по инциденту и результату переключения
func NewEmergencyEvent(incident *models.Incident, threshold int, overridden int64) WebhookEvent {
	return WebhookEvent{
		Event:             EventEmergencyOverride,
		IncidentID:        incident.ID,
		IncidentType:      string(incident.Type),
		Severity:          incident.Severity,
		Lat:               incident.Lat,
		Lng:               incident.Lng,
		DensityThreshold:  threshold,
		SignalsOverridden: overridden,
		Timestamp:         time.Now().UTC(),
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладет событие в очередь Redis, доставкой занимается WebhookWorker
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH + BRPOP в воркере дают FIFO
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
