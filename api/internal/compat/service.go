package compat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"compat-bot/api/internal/extract"
	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/logger"
	"compat-bot/api/internal/metrics"
	"compat-bot/api/internal/util"
	"compat-bot/api/internal/zodiac"
)

const (
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = 1.0
)

// EngineSource отдаёт движок по llm_name (см. llm.Engines).
type EngineSource interface {
	GetEngine(llmName string) (llm.Engine, error)
}

type Service struct {
	engines     EngineSource
	log         logger.Logger
	metrics     *metrics.Metrics
	timeout     time.Duration
	temperature float64
	now         func() time.Time
}

type Option func(*Service)

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithTemperature(t float64) Option {
	return func(s *Service) { s.temperature = t }
}

// WithClock подменяет «сегодня» для промпта.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(engines EngineSource, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Service{
		engines:     engines,
		log:         log,
		timeout:     DefaultTimeout,
		temperature: DefaultTemperature,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Calculate выбирает движок по req.LLMName и считает совместимость.
func (s *Service) Calculate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		s.metrics.Calculation(metrics.OutcomeInvalid)
		return Result{}, err
	}
	eng, err := s.engines.GetEngine(req.LLMName)
	if err != nil {
		s.metrics.Calculation(metrics.OutcomeInvalid)
		return Result{}, &ValidationError{Field: "llm_name", Message: err.Error()}
	}
	return s.run(ctx, eng, req)
}

// CalculateWithEngine — то же, но с уже выбранным движком (бот хранит выбор по чату).
func (s *Service) CalculateWithEngine(ctx context.Context, eng llm.Engine, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		s.metrics.Calculation(metrics.OutcomeInvalid)
		return Result{}, err
	}
	if eng == nil {
		s.metrics.Calculation(metrics.OutcomeInvalid)
		return Result{}, &ValidationError{Field: "llm_name", Message: "llm is not configured"}
	}
	return s.run(ctx, eng, req)
}

func (s *Service) run(ctx context.Context, eng llm.Engine, req Request) (Result, error) {
	sign1 := zodiac.Resolve(req.Person1Date)
	sign2 := zodiac.Resolve(req.Person2Date)

	log := s.log.With(map[string]interface{}{
		"engine":  eng.Name(),
		"model":   eng.GetModel(),
		"sign1":   string(sign1),
		"sign2":   string(sign2),
		"tg_user": req.TelegramUserID,
	})

	prompt := BuildPrompt(req, sign1, sign2, s.now(), s.temperature)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	raw, err := eng.Complete(callCtx, prompt)
	s.metrics.ObserveUpstream(eng.Name(), time.Since(started))
	if err != nil {
		outcome := metrics.OutcomeUpstream
		if errors.Is(err, llm.ErrEnvelope) {
			outcome = metrics.OutcomeEnvelope
		}
		s.metrics.Calculation(outcome)
		log.WithError(err).Error("completion call failed", map[string]interface{}{"outcome": outcome})
		return Result{}, fmt.Errorf("%w: %w", ErrFailed, err)
	}

	payload, ok := extract.Extract(raw)
	if !ok {
		s.metrics.Calculation(metrics.OutcomeExtraction)
		log.Error("no payload in model response", map[string]interface{}{
			"raw_type": fmt.Sprintf("%T", raw),
			"raw":      util.Truncate(fmt.Sprint(raw), 512),
		})
		return Result{}, fmt.Errorf("%w: %w", ErrFailed, ErrExtraction)
	}

	res := Normalize(payload, sign1, sign2)
	s.metrics.Calculation(metrics.OutcomeOK)
	log.Info("compatibility calculated", map[string]interface{}{
		"overall":  res.OverallCompatibility,
		"duration": time.Since(started).String(),
	})
	return res, nil
}
