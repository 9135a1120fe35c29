package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelayFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"nil", nil, 0},
		{"tg retry after", &tgbotapi.Error{Code: 429, Message: "Too Many Requests", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 7}}, 7 * time.Second},
		{"text retry after", errors.New("Too Many Requests: retry after 12"), 12 * time.Second},
		{"429 without hint", errors.New("too many requests"), 3 * time.Second},
		{"net timeout", timeoutErr{}, 2 * time.Second},
		{"other", errors.New("boom"), time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetryDelayFromError(tt.err))
		})
	}
}

type scriptedUpdates struct {
	mu      sync.Mutex
	calls   []tgbotapi.UpdateConfig
	batches [][]tgbotapi.Update
	errs    []error
	cancel  context.CancelFunc
}

func (s *scriptedUpdates) GetUpdates(c tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.calls)
	s.calls = append(s.calls, c)
	if i >= len(s.batches) {
		s.cancel()
		return nil, nil
	}
	return s.batches[i], s.errs[i]
}

func TestPoller_AdvancesOffsetAndSurvivesErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &scriptedUpdates{
		batches: [][]tgbotapi.Update{
			{{UpdateID: 10}, {UpdateID: 11}},
			nil,
			{{UpdateID: 12}},
		},
		errs:   []error{nil, errors.New("boom"), nil},
		cancel: cancel,
	}
	p := &Poller{Bot: src, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Idle: time.Millisecond}

	var got []int
	done := make(chan struct{})
	go func() {
		p.Run(ctx, func(u tgbotapi.Update) { got = append(got, u.UpdateID) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop")
	}

	assert.Equal(t, []int{10, 11, 12}, got)
	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, 0, src.calls[0].Offset)
	assert.Equal(t, 12, src.calls[1].Offset)
	assert.Equal(t, 12, src.calls[2].Offset)
	assert.Equal(t, 13, src.calls[3].Offset)
}

func TestWebhookPath(t *testing.T) {
	a := WebhookPath("123:abc")
	assert.Equal(t, a, WebhookPath("123:abc"))
	assert.NotEqual(t, a, WebhookPath("123:abd"))
	assert.Len(t, a, len("/webhook/")+16)
	assert.NotContains(t, a, "abc")
}
