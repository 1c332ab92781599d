// Package app собирает приложение: движок слотов, необязательную базу
// журнала, сервис казино с обработчиками, Telegram-бота, планировщик cron
// и служебный HTTP-сервер.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/api"
	"serotonyl.ru/slots-bot/internal/bot"
	"serotonyl.ru/slots-bot/internal/bot/filters"
	"serotonyl.ru/slots-bot/internal/config"
	"serotonyl.ru/slots-bot/internal/db/postgres"
	"serotonyl.ru/slots-bot/internal/features/casino"
	"serotonyl.ru/slots-bot/internal/features/slots"
	"serotonyl.ru/slots-bot/internal/jobs"
)

// App содержит все запущенные компоненты.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool // nil, если журнал выключен
	BotAPI    *tgbotapi.BotAPI
	Ops       *api.Server // nil, если OPS_HTTP_ADDR пуст
}

// New собирает приложение.
//
// Порядок инициализации:
//  1. движок слотов (ошибка в таблице выплат до любых сетевых вызовов)
//  2. база журнала и миграции, если журнал включён
//  3. Telegram API
//  4. сервис, обработчики, бот, планировщик, служебный HTTP
//
// Параметры:
//   - ctx: контекст
//   - cfg: загруженная конфигурация
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	var (
		pool    *pgxpool.Pool
		repo    *casino.Repository
		journal casino.Journal
		purger  jobs.JournalPurger
	)
	if cfg.FeatureJournalEnabled {
		pool, err = postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к базе журнала: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, casino.Migrations); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка миграций журнала: %w", err)
		}
		repo = casino.NewRepository(pool)
		journal, purger = repo, repo
	} else {
		log.Info("Журнал спинов выключен")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	casinoService := casino.NewService(engine, journal, cfg)
	casinoHandler := casino.NewHandler(casinoService, botAPI)

	chatFilter := filters.NewChatFilter(cfg.AllowedChatIDs)
	b := bot.New(botAPI, cfg, casinoHandler, chatFilter)

	scheduler := jobs.NewScheduler(cfg.Location(), casinoService, purger, cfg.JournalRetentionDays)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
		Ops:       api.NewServer(cfg.OpsHTTPAddr, casinoService),
	}, nil
}

// Close закрывает пул соединений с базой.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func newEngine(cfg *config.Config) (*slots.Engine, error) {
	slotCfg, err := slots.ResolveConfig(cfg.SlotsSymbolSet, cfg.SlotsPaytablePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки таблицы выплат: %w", err)
	}

	rng := slots.DefaultRNG()
	if cfg.SlotsSeed != 0 {
		rng = slots.NewSeededRNG(cfg.SlotsSeed)
		log.WithField("seed", cfg.SlotsSeed).Warn("Слоты работают на засеянном RNG")
	}

	engine, err := slots.NewEngine(slotCfg, rng)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания движка: %w", err)
	}
	log.WithFields(log.Fields{
		"symbols":         len(engine.Symbols()),
		"grid":            fmt.Sprintf("%dx%d", engine.Rows(), engine.Cols()),
		"theoretical_rtp": engine.TheoreticalRTP().StringFixed(4),
	}).Info("Движок слотов готов")
	return engine, nil
}
