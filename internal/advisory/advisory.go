// Package advisory вычисляет рекомендации по объезду инцидента.
//
// Доступны две стратегии с общим контрактом service.RouteAnalyzer:
// эвристическая (без внешних вызовов) и делегированная (AI-модель
// и OpenRouteService). Стратегия выбирается один раз в New.
package advisory

import (
	"context"
	"fmt"

	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	ModeHeuristic = "heuristic"
	ModeDelegated = "delegated"
	ModeAuto      = "auto"

	// DrivingProfile - профиль маршрутизации для OpenRouteService
	DrivingProfile = "driving-car"
)

// Coordinate - точка в порядке (долгота, широта), как принято в GeoJSON
type Coordinate struct {
	Lng float64
	Lat float64
}

// RouteGeometry - результат вызова сервиса маршрутизации
type RouteGeometry struct {
	Coordinates     [][]float64
	DistanceMeters  float64
	DurationSeconds float64
}

// TextGenerator - внешний генератор текста (AI-модель)
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RoutePlanner - внешний сервис построения маршрута
type RoutePlanner interface {
	Route(ctx context.Context, start, end Coordinate, profile string) (*RouteGeometry, error)
}

// New выбирает стратегию анализа по конфигурации.
// В режиме auto делегированный анализ включается только при наличии обоих ключей.
func New(cfg *config.Config, logger *logrus.Logger) (service.RouteAnalyzer, error) {
	hasCredentials := cfg.AIAPIKey != "" && cfg.ORSAPIKey != ""

	mode := cfg.AdvisoryMode
	if mode == "" || mode == ModeAuto {
		mode = ModeHeuristic
		if hasCredentials {
			mode = ModeDelegated
		}
	}

	switch mode {
	case ModeHeuristic:
		logger.WithField("mode", mode).Info("Route advisory engine configured")
		return NewHeuristicAnalyzer(cfg.HeuristicDelay, logger), nil
	case ModeDelegated:
		if !hasCredentials {
			return nil, fmt.Errorf("delegated advisory mode requires AI_API_KEY and ORS_API_KEY")
		}
		generator := NewOpenAIGenerator(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
		planner := NewORSClient(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSTimeout)
		logger.WithFields(logrus.Fields{
			"mode":     mode,
			"ai_model": cfg.AIModel,
		}).Info("Route advisory engine configured")
		return NewDelegatedAnalyzer(generator, planner, logger), nil
	default:
		return nil, fmt.Errorf("unknown advisory mode %q", cfg.AdvisoryMode)
	}
}
