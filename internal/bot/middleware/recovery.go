package middleware

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic вызывается через defer в начале обработки апдейта.
// Логирует панику вместе со стеком, бот продолжает работу.
//
// Параметры:
//   - updateID: номер апдейта, попадает в лог
//
// Пример:
//
//	defer middleware.RecoverFromPanic(update.UpdateID)
func RecoverFromPanic(updateID int) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"update_id": updateID,
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("ПАНИКА в обработчике апдейта, восстановлено")
	}
}
