// Package api поднимает небольшой служебный HTTP-сервер рядом с ботом:
// проверка живости, таблица выплат и симуляция RTP. Только чтение.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"serotonyl.ru/slots-bot/internal/features/slots"
)

// Casino: часть casino.Service, которую читают служебные эндпоинты.
type Casino interface {
	Engine() *slots.Engine
	ActiveSessions() int
	Simulate(spins int) (slots.SimStats, error)
}

// NewRouter регистрирует эндпоинты:
//   - GET /healthz: статус и число открытых сессий
//   - GET /paytable: символы, веса, выплаты, теоретический RTP
//   - GET /rtp?spins=N: симуляция на отдельном движке
func NewRouter(c Casino) http.Handler {
	h := NewHandler(c)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/paytable", h.Paytable)
	r.Get("/rtp", h.RTP)

	return r
}
