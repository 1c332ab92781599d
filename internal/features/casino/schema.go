// Package casino: schema.go содержит миграции журнала.
// Миграции встроены в бинарник, папка migrations/ при деплое не нужна.
package casino

import "serotonyl.ru/slots-bot/internal/db/postgres"

// Migrations создаёт таблицы журнала. Версия 3 добавляет признак
// конфискованного спина и снимает ограничение точности с сумм.
var Migrations = []postgres.Migration{
	{Version: 1, Name: "slot_spins", SQL: migration001Spins},
	{Version: 2, Name: "slot_stats", SQL: migration002Stats},
	{Version: 3, Name: "slot_spins_forfeited_exact_amounts", SQL: migration003Forfeited},
}

const migration001Spins = `
CREATE TABLE IF NOT EXISTS slot_spins (
    id UUID PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_id TEXT NOT NULL,
    bet NUMERIC(20, 4) NOT NULL,
    lines SMALLINT NOT NULL,
    stake NUMERIC(20, 4) NOT NULL,
    winnings NUMERIC(20, 4) NOT NULL,
    balance NUMERIC(20, 4) NOT NULL,
    ended BOOLEAN NOT NULL DEFAULT FALSE,
    spin_data JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_slot_spins_user_created ON slot_spins(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_slot_spins_created_at ON slot_spins(created_at);
`

const migration002Stats = `
CREATE TABLE IF NOT EXISTS slot_stats (
    user_id BIGINT PRIMARY KEY,
    total_spins INTEGER NOT NULL DEFAULT 0,
    total_wagered NUMERIC(24, 4) NOT NULL DEFAULT 0,
    total_won NUMERIC(24, 4) NOT NULL DEFAULT 0,
    biggest_win NUMERIC(20, 4) NOT NULL DEFAULT 0,
    sessions_ended INTEGER NOT NULL DEFAULT 0,
    last_spin_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW()
);
`

const migration003Forfeited = `
ALTER TABLE slot_spins ADD COLUMN IF NOT EXISTS forfeited BOOLEAN NOT NULL DEFAULT FALSE;
ALTER TABLE slot_spins
    ALTER COLUMN bet TYPE NUMERIC,
    ALTER COLUMN stake TYPE NUMERIC,
    ALTER COLUMN winnings TYPE NUMERIC,
    ALTER COLUMN balance TYPE NUMERIC;
ALTER TABLE slot_stats
    ALTER COLUMN total_wagered TYPE NUMERIC,
    ALTER COLUMN total_won TYPE NUMERIC,
    ALTER COLUMN biggest_win TYPE NUMERIC;
`
