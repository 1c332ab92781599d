package api

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/common"
	"serotonyl.ru/slots-bot/internal/features/slots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler обслуживает служебные эндпоинты.
type Handler struct {
	casino Casino
}

// NewHandler создаёт Handler поверх c.
func NewHandler(c Casino) *Handler {
	return &Handler{casino: c}
}

type healthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
}

type symbolView struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Payout string `json:"payout"`
}

type paytableResponse struct {
	Rows           int          `json:"rows"`
	Cols           int          `json:"cols"`
	MaxLines       int          `json:"max_lines"`
	PoolSize       int          `json:"pool_size"`
	Symbols        []symbolView `json:"symbols"`
	TheoreticalRTP string       `json:"theoretical_rtp"`
}

type rtpResponse struct {
	Spins          int            `json:"spins"`
	Wagered        string         `json:"wagered"`
	Won            string         `json:"won"`
	RTP            string         `json:"rtp"`
	HitRate        float64        `json:"hit_rate"`
	LineHits       map[string]int `json:"line_hits"`
	TheoreticalRTP string         `json:"theoretical_rtp"`
}

// Health: проверка живости и число открытых сессий.
//
// Ответ: {"status":"ok","active_sessions":3}
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		ActiveSessions: h.casino.ActiveSessions(),
	})
}

// Paytable описывает автомат, на котором работает бот.
func (h *Handler) Paytable(w http.ResponseWriter, _ *http.Request) {
	e := h.casino.Engine()
	resp := paytableResponse{
		Rows:           e.Rows(),
		Cols:           e.Cols(),
		MaxLines:       e.MaxLines(),
		PoolSize:       e.PoolSize(),
		TheoreticalRTP: e.TheoreticalRTP().StringFixed(4),
	}
	for _, s := range e.Symbols() {
		resp.Symbols = append(resp.Symbols, symbolView{
			Name:   s.Name,
			Weight: s.Weight,
			Payout: s.Payout.String(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// RTP запускает симуляцию. ?spins=N заменяет значение по умолчанию.
func (h *Handler) RTP(w http.ResponseWriter, r *http.Request) {
	spins := 0
	if raw := r.URL.Query().Get("spins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "spins must be a positive integer")
			return
		}
		spins = n
	}

	stats, err := h.casino.Simulate(spins)
	switch {
	case errors.Is(err, common.ErrTooManySpins), errors.Is(err, slots.ErrInvalidBet), errors.Is(err, slots.ErrInvalidLines):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.WithError(err).Error("Ошибка симуляции")
		writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}

	writeJSON(w, http.StatusOK, rtpResponse{
		Spins:          stats.Spins,
		Wagered:        stats.Wagered.String(),
		Won:            stats.Won.String(),
		RTP:            stats.RTP.StringFixed(4),
		HitRate:        stats.HitRate,
		LineHits:       stats.LineHits,
		TheoreticalRTP: h.casino.Engine().TheoreticalRTP().StringFixed(4),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("Ошибка кодирования ответа")
		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
