package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Server держит служебный роутер на отдельном порту.
type Server struct {
	srv *http.Server
}

// NewServer создаёт сервер с таймаутами.
//
// Параметры:
//   - addr: адрес из OPS_HTTP_ADDR; пустой адрес выключает сервер
//   - c: сервис, из которого читаются данные
//
// Возвращает nil при пустом addr. Методы nil-сервера ничего не делают.
func NewServer(addr string, c Casino) *Server {
	if addr == "" {
		return nil
	}
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewRouter(c),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start запускает сервер в отдельной горутине.
func (s *Server) Start() {
	if s == nil {
		return
	}
	go func() {
		log.WithField("addr", s.srv.Addr).Info("Служебный HTTP запущен")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Служебный HTTP остановлен с ошибкой")
		}
	}()
}

// Shutdown дожидается завершения открытых запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
