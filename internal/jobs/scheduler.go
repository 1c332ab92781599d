// Package jobs запускает фоновые задачи по расписанию (cron).
// Удаляет простаивающие слот-сессии и чистит старые записи журнала спинов.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	sweepSchedule = "*/5 * * * *"
	purgeSchedule = "30 3 * * *"
	purgeTimeout  = time.Minute
)

// SessionSweeper удаляет сессии, которые слишком долго простаивают.
type SessionSweeper interface {
	SweepIdle(now time.Time) int
}

// JournalPurger удаляет записи журнала старше cutoff.
type JournalPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler управляет cron-задачами.
type Scheduler struct {
	cron      *cron.Cron
	sweeper   SessionSweeper
	purger    JournalPurger // nil, если журнал выключен
	retention time.Duration
	now       func() time.Time
}

// NewScheduler создаёт планировщик.
//
// Параметры:
//   - loc: часовой пояс расписания (nil = UTC)
//   - sweeper: хранилище сессий
//   - purger: журнал спинов, может быть nil
//   - retentionDays: сколько дней хранить записи журнала
func NewScheduler(loc *time.Location, sweeper SessionSweeper, purger JournalPurger, retentionDays int) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		sweeper:   sweeper,
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Start регистрирует задачи и запускает cron.
//
// Расписание:
//   - каждые 5 минут: удаление простаивающих сессий
//   - каждый день в 03:30: чистка журнала (если журнал включён)
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(sweepSchedule, s.runSweep); err != nil {
		return err
	}
	if s.purger != nil && s.retention > 0 {
		if _, err := s.cron.AddFunc(purgeSchedule, func() { s.runPurge(ctx) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.WithField("jobs", len(s.cron.Entries())).Info("Планировщик запущен")
	return nil
}

// Stop останавливает cron и ждёт завершения текущих задач.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Планировщик остановлен")
}

func (s *Scheduler) runSweep() {
	n := s.sweeper.SweepIdle(s.now())
	if n > 0 {
		log.WithField("sessions", n).Info("[CRON] Удалены простаивающие сессии")
	}
}

func (s *Scheduler) runPurge(ctx context.Context) {
	if s.purger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	n, err := s.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка чистки журнала")
		return
	}
	log.WithFields(log.Fields{
		"rows":   n,
		"cutoff": cutoff.Format(time.RFC3339),
	}).Info("[CRON] Журнал очищен")
}
