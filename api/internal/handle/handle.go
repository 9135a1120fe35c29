package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"compat-bot/api/internal/compat"
	"compat-bot/api/internal/logger"
	"compat-bot/api/internal/metrics"
)

// Calculator — то, что умеет считать совместимость (compat.Service).
type Calculator interface {
	Calculate(ctx context.Context, req compat.Request) (compat.Result, error)
}

type Handle struct {
	calc    Calculator
	log     logger.Logger
	metrics *metrics.Metrics
}

func New(calc Calculator, log logger.Logger, m *metrics.Metrics) *Handle {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handle{
		calc:    calc,
		log:     log,
		metrics: m,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
