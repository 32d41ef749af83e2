package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/events"
	"github.com/shenikar/traffic_advisory_system/internal/metrics"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/signals"
	"github.com/shenikar/traffic_advisory_system/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MaxListedIncidents - верхняя граница выдачи списка инцидентов
const MaxListedIncidents = 1000

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	List(ctx context.Context, status string, limit int) ([]*models.Incident, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Count(ctx context.Context, filter models.IncidentFilter) (int, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// RouteAnalysisRepository хранит не более одного анализа на инцидент
type RouteAnalysisRepository interface {
	Upsert(ctx context.Context, analysis *models.RouteAnalysis) error
	GetByIncidentID(ctx context.Context, incidentID uuid.UUID) (*models.RouteAnalysis, error)
}

// RouteAnalyzer строит рекомендации по маршрутам; ошибок не возвращает
type RouteAnalyzer interface {
	Analyze(ctx context.Context, incident *models.Incident, snapshot []*models.TrafficSignal) *models.RouteAnalysis
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, status string) ([]*models.Incident, error)
	DeactivateIncident(ctx context.Context, id uuid.UUID) error
	GetRouteAnalysis(ctx context.Context, incidentID uuid.UUID) (*models.RouteAnalysis, error)
	GetStats(ctx context.Context) (*models.IncidentStats, error)
}

type incidentService struct {
	repo              IncidentRepository
	routes            RouteAnalysisRepository
	signalService     SignalService
	analyzer          RouteAnalyzer
	logger            *logrus.Logger
	webhooks          webhook.WebhookPublisher
	events            events.Publisher
	overrideThreshold int // порог плотности для экстренного переключения в GREEN
}

func NewIncidentService(
	repo IncidentRepository,
	routes RouteAnalysisRepository,
	signalService SignalService,
	analyzer RouteAnalyzer,
	logger *logrus.Logger,
	cfg *config.Config,
	webhooks webhook.WebhookPublisher,
	publisher events.Publisher,
) IncidentService {
	threshold := cfg.OverrideThreshold
	if threshold <= 0 {
		threshold = signals.EmergencyDensityThreshold
	}
	return &incidentService{
		repo:              repo,
		routes:            routes,
		signalService:     signalService,
		analyzer:          analyzer,
		logger:            logger,
		webhooks:          webhooks,
		events:            publisher,
		overrideThreshold: threshold,
	}
}

// CreateIncident регистрирует инцидент и строит для него анализ маршрутов.
// Шаги выполняются строго последовательно; транзакции между коллекциями нет.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	incident.ID = uuid.New()
	incident.Status = models.StatusActive
	incident.Timestamp = time.Now().UTC()
	if strings.TrimSpace(incident.ReporterName) == "" {
		incident.ReporterName = models.DefaultReporterName
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "CreateIncident",
		"incident_id": incident.ID,
		"type":        incident.Type,
		"severity":    incident.Severity,
	})
	log.Info("Attempting to create a new incident")

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}
	metrics.IncidentsReported.WithLabelValues(string(incident.Type), string(incident.Severity)).Inc()

	snapshot, err := s.signalService.ListSignals(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read traffic signals for analysis")
		s.markDegraded(ctx, incident, log)
		return fmt.Errorf("service: could not read traffic signals: %w", err)
	}

	log.WithField("signals", len(snapshot)).Info("Analyzing incident routes")
	analysis := s.analyzer.Analyze(ctx, incident, snapshot)
	analysis.IncidentID = incident.ID
	if analysis.Timestamp.IsZero() {
		analysis.Timestamp = time.Now().UTC()
	}

	if err := s.routes.Upsert(ctx, analysis); err != nil {
		log.WithError(err).Error("Failed to store route analysis")
		s.markDegraded(ctx, incident, log)
		return fmt.Errorf("service: could not store route analysis: %w", err)
	}
	log.Info("Route analysis complete")

	if incident.Severity == models.SeverityHigh {
		s.activateEmergencyProtocol(ctx, incident, log)
	}

	if err := s.events.PublishIncident(ctx, events.NewIncidentEvent(incident)); err != nil {
		log.WithError(err).Warn("Failed to publish incident event")
	}

	log.Info("Incident created successfully")
	return nil
}

// activateEmergencyProtocol переключает загруженные светофоры в GREEN.
// Ошибки только логируются: инцидент и анализ уже сохранены.
func (s *incidentService) activateEmergencyProtocol(ctx context.Context, incident *models.Incident, log *logrus.Entry) {
	threshold := s.overrideThreshold
	overridden, err := s.signalService.ApplyEmergencyOverride(ctx, threshold)
	if err != nil {
		log.WithError(err).Error("Emergency signal override failed")
		return
	}
	log.WithField("signals_overridden", overridden).Warn("High severity incident! Emergency signal protocol activated.")

	if err := s.webhooks.Publish(ctx, webhook.NewEmergencyEvent(incident, threshold, overridden)); err != nil {
		log.WithError(err).Warn("Failed to enqueue emergency webhook")
	}
}

// markDegraded - компенсирующий шаг: инцидент без анализа помечается статусом degraded
func (s *incidentService) markDegraded(ctx context.Context, incident *models.Incident, log *logrus.Entry) {
	if err := s.repo.UpdateStatus(ctx, incident.ID, models.StatusDegraded); err != nil {
		log.WithError(err).Error("Failed to mark incident as degraded")
		return
	}
	incident.Status = models.StatusDegraded
	if err := s.repo.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}

	log.Info("Incident fetched successfully")
	return incident, nil
}

// ListIncidents возвращает до MaxListedIncidents инцидентов, опционально по статусу
func (s *incidentService) ListIncidents(ctx context.Context, status string) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"status":  status,
	})
	log.Info("Listing incidents")

	incidents, err := s.repo.List(ctx, status, MaxListedIncidents)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// DeactivateIncident переводит инцидент в статус inactive
func (s *incidentService) DeactivateIncident(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeactivateIncident",
		"incident_id": id,
	})
	log.Info("Attempting to deactivate incident")

	if err := s.repo.UpdateStatus(ctx, id, models.StatusInactive); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Warn("Attempted to deactivate a non-existent incident")
		} else {
			log.WithError(err).Error("Failed to deactivate incident in repository")
		}
		return fmt.Errorf("service: could not deactivate incident: %w", err)
	}

	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident deactivated successfully")
	return nil
}

// GetRouteAnalysis возвращает сохраненный анализ маршрутов инцидента
func (s *incidentService) GetRouteAnalysis(ctx context.Context, incidentID uuid.UUID) (*models.RouteAnalysis, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetRouteAnalysis",
		"incident_id": incidentID,
	})

	analysis, err := s.routes.GetByIncidentID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to get route analysis")
		return nil, fmt.Errorf("service: could not get route analysis: %w", err)
	}
	return analysis, nil
}

// GetStats считает инциденты: всего, активных и активных высокой серьезности
func (s *incidentService) GetStats(ctx context.Context) (*models.IncidentStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetStats",
	})

	stats := &models.IncidentStats{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(gCtx, models.IncidentFilter{})
		stats.TotalIncidents = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.Count(gCtx, models.IncidentFilter{Status: models.StatusActive})
		stats.ActiveIncidents = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.Count(gCtx, models.IncidentFilter{Status: models.StatusActive, Severity: models.SeverityHigh})
		stats.HighSeverityCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to count incidents")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return stats, nil
}
