package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/traffic_advisory_system/internal/config"
)

const (
	// idleConnLifetime - простаивающие соединения закрываются, пул не держит лишнего
	idleConnLifetime = 5 * time.Minute
	// healthCheckPeriod - как часто пул проверяет соединения
	healthCheckPeriod = 30 * time.Second
	pingTimeout       = 5 * time.Second
)

// NewPostgresDB создает пул соединений для трех таблиц сервиса
// (incidents, route_analyses, traffic_signals).
// Размер пула берется из DB_MAX_CONNS: пайплайн инцидента держит одно
// соединение на шаг, статистика берет до трех параллельно.
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	applyPoolSettings(poolCfg, appCfg)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return pool, nil
}

func applyPoolSettings(poolCfg *pgxpool.Config, appCfg *config.Config) {
	if appCfg.DBMaxConns > 0 {
		poolCfg.MaxConns = appCfg.DBMaxConns
	}
	poolCfg.MaxConnIdleTime = idleConnLifetime
	poolCfg.HealthCheckPeriod = healthCheckPeriod
}
