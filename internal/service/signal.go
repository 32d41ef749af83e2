package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/events"
	"github.com/shenikar/traffic_advisory_system/internal/metrics"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/signals"
	"github.com/sirupsen/logrus"
)

const defaultSignalsPageSize = 100

// SignalRepository определяет контракт хранилища светофоров
type SignalRepository interface {
	Upsert(ctx context.Context, signal *models.TrafficSignal) error
	List(ctx context.Context, limit int) ([]*models.TrafficSignal, error)
	UpdateState(ctx context.Context, signalID string, state models.SignalState, density int) error
	// SetStateAboveDensity массово выставляет состояние светофорам с плотностью выше порога
	SetStateAboveDensity(ctx context.Context, threshold int, state models.SignalState) (int64, error)
}

// SignalService определяет контракт управления светофорами
type SignalService interface {
	ListSignals(ctx context.Context) ([]*models.TrafficSignal, error)
	InitializeSignals(ctx context.Context) (int, error)
	SimulateTraffic(ctx context.Context, roadID string, density int, emergencyDetected bool) (*models.SimulationResult, error)
	ApplyEmergencyOverride(ctx context.Context, threshold int) (int64, error)
}

type signalService struct {
	repo     SignalRepository
	logger   *logrus.Logger
	events   events.Publisher
	pageSize int
}

func NewSignalService(repo SignalRepository, logger *logrus.Logger, cfg *config.Config, publisher events.Publisher) SignalService {
	pageSize := cfg.SignalsPageSize
	if pageSize < 1 {
		pageSize = defaultSignalsPageSize
	}
	return &signalService{
		repo:     repo,
		logger:   logger,
		events:   publisher,
		pageSize: pageSize,
	}
}

// ListSignals возвращает текущее состояние светофоров (не более pageSize)
func (s *signalService) ListSignals(ctx context.Context) ([]*models.TrafficSignal, error) {
	list, err := s.repo.List(ctx, s.pageSize)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "signal",
			"method":  "ListSignals",
		}).WithError(err).Error("Failed to list traffic signals")
		return nil, fmt.Errorf("service: could not list signals: %w", err)
	}
	return list, nil
}

// InitializeSignals сбрасывает демонстрационные светофоры к исходным значениям.
// Операция идемпотентна: upsert по signal_id.
func (s *signalService) InitializeSignals(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "signal",
		"method":  "InitializeSignals",
	})
	log.Info("Initializing traffic signals")

	seeds := signals.Seeds()
	now := time.Now().UTC()
	for _, seed := range seeds {
		seed.LastUpdated = now
		if err := s.repo.Upsert(ctx, seed); err != nil {
			log.WithError(err).WithField("signal_id", seed.SignalID).Error("Failed to upsert traffic signal")
			return 0, fmt.Errorf("service: could not initialize signal %s: %w", seed.SignalID, err)
		}
	}

	if err := s.events.PublishSignal(ctx, events.NewSignalEvent("", "", nil, int64(len(seeds)), events.ReasonInitialization)); err != nil {
		log.WithError(err).Warn("Failed to publish signal event")
	}

	log.WithField("count", len(seeds)).Info("Traffic signals initialized")
	return len(seeds), nil
}

// SimulateTraffic пересчитывает цвет светофора по новой плотности
func (s *signalService) SimulateTraffic(ctx context.Context, roadID string, density int, emergencyDetected bool) (*models.SimulationResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "signal",
		"method":    "SimulateTraffic",
		"signal_id": roadID,
		"density":   density,
		"emergency": emergencyDetected,
	})

	state := signals.Classify(density, emergencyDetected)
	if err := s.repo.UpdateState(ctx, roadID, state, density); err != nil {
		log.WithError(err).Warn("Failed to update traffic signal")
		return nil, fmt.Errorf("service: could not simulate traffic: %w", err)
	}
	metrics.SignalStateChanges.WithLabelValues(string(state)).Inc()

	if err := s.events.PublishSignal(ctx, events.NewSignalEvent(roadID, state, &density, 1, events.ReasonSimulation)); err != nil {
		log.WithError(err).Warn("Failed to publish signal event")
	}

	log.WithField("new_state", state).Info("Traffic signal updated")
	return &models.SimulationResult{SignalID: roadID, NewState: state, Density: density}, nil
}

// ApplyEmergencyOverride переключает в GREEN все светофоры с плотностью выше порога
func (s *signalService) ApplyEmergencyOverride(ctx context.Context, threshold int) (int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "signal",
		"method":    "ApplyEmergencyOverride",
		"threshold": threshold,
	})

	affected, err := s.repo.SetStateAboveDensity(ctx, threshold, models.SignalGreen)
	if err != nil {
		log.WithError(err).Error("Failed to apply emergency override")
		return 0, fmt.Errorf("service: could not apply emergency override: %w", err)
	}
	metrics.EmergencyOverrides.Inc()
	metrics.SignalsOverridden.Add(float64(affected))

	if err := s.events.PublishSignal(ctx, events.NewSignalEvent("", models.SignalGreen, nil, affected, events.ReasonEmergencyOverride)); err != nil {
		log.WithError(err).Warn("Failed to publish signal event")
	}

	log.WithField("affected", affected).Info("Emergency override applied")
	return affected, nil
}
