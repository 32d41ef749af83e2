package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	// publishTimeout ограничивает ожидание брокера: публикация не должна тормозить запрос
	publishTimeout = 2 * time.Second
	maxAttempts    = 3
)

// messageWriter - часть kafka.Writer, нужная издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher пишет события в топики Kafka, ключ сообщения - идентификатор сущности
type KafkaPublisher struct {
	incidents messageWriter
	signals   messageWriter
	logger    *logrus.Logger
	timeout   time.Duration
}

func NewKafkaPublisher(brokers []string, incidentTopic, signalTopic string, logger *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		incidents: newWriter(brokers, incidentTopic),
		signals:   newWriter(brokers, signalTopic),
		logger:    logger,
		timeout:   publishTimeout,
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            maxAttempts,
		WriteBackoffMax:        200 * time.Millisecond,
		WriteTimeout:           publishTimeout,
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) PublishIncident(ctx context.Context, event IncidentEvent) error {
	return p.write(ctx, p.incidents, event.IncidentID.String(), event)
}

func (p *KafkaPublisher) PublishSignal(ctx context.Context, event SignalEvent) error {
	key := event.SignalID
	if key == "" {
		key = event.Reason
	}
	return p.write(ctx, p.signals, key, event)
}

func (p *KafkaPublisher) write(ctx context.Context, w messageWriter, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	p.logger.WithField("key", key).Debug("Event published to kafka")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return errors.Join(p.incidents.Close(), p.signals.Close())
}
