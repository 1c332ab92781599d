// Package postgres управляет подключением к PostgreSQL для журнала спинов.
// Используется пул соединений pgxpool, общий для всех горутин.
//
// Пул сам открывает и закрывает соединения, переподключается при обрыве
// и ограничивает максимальное число соединений.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/config"
)

// NewPool создаёт пул соединений по настройкам DB_* из конфига.
//
// Параметры:
//   - ctx: контекст для отмены операции
//   - cfg: конфигурация с параметрами подключения
//
// Возвращает:
//   - *pgxpool.Pool: готовый к использованию пул
//   - error: ошибка, если подключение не удалось
//
// Пример:
//
//	pool, err := postgres.NewPool(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return Connect(ctx, cfg.DatabaseDSN(), cfg.DBMinConns, cfg.DBMaxConns)
}

// Connect открывает пул по готовой строке подключения и проверяет,
// что база отвечает (ping с таймаутом 10 секунд).
//
// Параметры:
//   - ctx: контекст
//   - dsn: строка подключения postgres://...
//   - minConns, maxConns: границы пула; maxConns <= 0 оставляет значение pgx
//
// Возвращает пул или ошибку; при ошибке пинга пул закрывается.
func Connect(ctx context.Context, dsn string, minConns, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}

	// Настройки пула соединений
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	if minConns >= 0 && minConns <= poolConfig.MaxConns {
		poolConfig.MinConns = minConns
	}
	poolConfig.MaxConnLifetime = time.Hour          // Время жизни одного соединения
	poolConfig.MaxConnIdleTime = 30 * time.Minute   // Время простоя до закрытия
	poolConfig.HealthCheckPeriod = time.Minute      // Проверка здоровья соединений

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула: %w", err)
	}

	// Проверяем, что база доступна
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("база данных недоступна: %w", err)
	}

	log.WithFields(log.Fields{
		"max_conns": poolConfig.MaxConns,
		"min_conns": poolConfig.MinConns,
	}).Info("Подключение к PostgreSQL установлено")
	return pool, nil
}
