// Package postgres: migrate.go применяет SQL-миграции, встроенные в код,
// и отмечает применённые версии в таблице schema_migrations.
package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Migration: одно версионированное изменение схемы.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrate применяет все ещё не записанные миграции по возрастанию версии.
// Повторный запуск ничего не меняет.
//
// Параметры:
//   - ctx: контекст
//   - pool: пул соединений
//   - migrations: список миграций в любом порядке
//
// Пример:
//
//	if err := postgres.Migrate(ctx, pool, casino.Migrations); err != nil {
//	    return fmt.Errorf("ошибка миграций: %w", err)
//	}
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations []Migration) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("создание schema_migrations: %w", err)
	}

	ordered := append([]Migration(nil), migrations...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })

	for _, m := range ordered {
		applied, err := applyMigration(ctx, pool, m)
		if err != nil {
			return fmt.Errorf("миграция %d (%s): %w", m.Version, m.Name, err)
		}
		if applied {
			log.WithFields(log.Fields{
				"version": m.Version,
				"name":    m.Name,
			}).Info("Миграция применена")
		}
	}
	return nil
}

// applyMigration выполняет одну миграцию в транзакции.
// Возвращает false, если версия уже записана.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("проверка версии: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("выполнение SQL: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name,
	); err != nil {
		return false, fmt.Errorf("запись версии: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("коммит: %w", err)
	}
	return true, nil
}
