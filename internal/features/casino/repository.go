// Package casino: repository.go работает с таблицами slot_spins и slot_stats.
package casino

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/slots-bot/internal/common"
)

// Journal хранит завершённые спины и отдаёт итоги по игроку.
type Journal interface {
	SaveSpin(ctx context.Context, rec *SpinRecord) error
	GetStats(ctx context.Context, userID int64) (*Stats, error)
}

// Repository: реализация Journal на PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий журнала.
//
// Параметры:
//   - db: пул соединений PostgreSQL
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SaveSpin записывает спин и обновляет slot_stats в одной транзакции.
//
// Параметры:
//   - ctx: контекст
//   - rec: запись спина (см. NewSpinRecord)
//
// Возвращает ошибку, если запись не удалась; транзакция тогда откатывается.
func (r *Repository) SaveSpin(ctx context.Context, rec *SpinRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO slot_spins (id, user_id, session_id, bet, lines, stake, winnings, balance, ended, forfeited, spin_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		rec.ID, rec.UserID, rec.SessionID, rec.Bet, rec.Lines, rec.Stake,
		rec.Winnings, rec.Balance, rec.Ended, rec.Forfeited, rec.SpinData, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи спина: %w", err)
	}

	ended := 0
	if rec.Ended {
		ended = 1
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO slot_stats (user_id, total_spins, total_wagered, total_won, biggest_win, sessions_ended, last_spin_at)
		VALUES ($1, 1, $2, $3, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			total_spins = slot_stats.total_spins + 1,
			total_wagered = slot_stats.total_wagered + $2,
			total_won = slot_stats.total_won + $3,
			biggest_win = GREATEST(slot_stats.biggest_win, $3),
			sessions_ended = slot_stats.sessions_ended + $4,
			last_spin_at = $5,
			updated_at = NOW()
	`, rec.UserID, rec.Stake, rec.Winnings, ended, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка обновления статистики: %w", err)
	}

	return tx.Commit(ctx)
}

// GetStats возвращает итоги игрока или common.ErrNoStats, если спинов не было.
func (r *Repository) GetStats(ctx context.Context, userID int64) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT user_id, total_spins, total_wagered, total_won, biggest_win, sessions_ended, last_spin_at
		FROM slot_stats
		WHERE user_id = $1
	`, userID).Scan(
		&s.UserID, &s.TotalSpins, &s.TotalWagered, &s.TotalWon,
		&s.BiggestWin, &s.SessionsEnded, &s.LastSpinAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNoStats
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения статистики: %w", err)
	}
	return &s, nil
}

// PurgeOlderThan удаляет записи журнала старше cutoff.
// Итоги в slot_stats сохраняются.
//
// Возвращает число удалённых строк.
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM slot_spins WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка чистки журнала: %w", err)
	}
	return tag.RowsAffected(), nil
}
