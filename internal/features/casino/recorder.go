// Package casino: recorder.go пишет разрешённые спины в журнал,
// подписываясь на события сессии.
package casino

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/features/slots"
)

const journalWriteTimeout = 5 * time.Second

// recorder подписан на сессию одного игрока. Ошибки журнала только
// логируются, до игрока они не доходят. Конфискованный спин пишется
// с нулевым выигрышем: ставка учитывается, выигрыш нет.
type recorder struct {
	slots.NopListener

	journal   Journal
	userID    int64
	sessionID string
	now       func() time.Time
}

func newRecorder(journal Journal, userID int64, sessionID string, now func() time.Time) *recorder {
	return &recorder{journal: journal, userID: userID, sessionID: sessionID, now: now}
}

func (r *recorder) SpinResolved(res slots.SpinResult) {
	logger := log.WithFields(log.Fields{
		"user_id":    r.userID,
		"session_id": r.sessionID,
	})

	rec, err := NewSpinRecord(r.userID, r.sessionID, res, r.now())
	if err != nil {
		logger.WithError(err).Error("Журнал: не удалось собрать запись")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()
	if err := r.journal.SaveSpin(ctx, rec); err != nil {
		logger.WithError(err).Warn("Журнал: не удалось сохранить спин")
	}
}
