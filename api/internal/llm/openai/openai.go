package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"compat-bot/api/internal/llm"
	"compat-bot/api/internal/util"
)

const DefaultBaseURL = "https://api.llm7.io/v1"

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

func New(key, model, baseURL string, timeout time.Duration) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// WithHTTPClient подменяет HTTP-клиент (тесты, трассировка).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

// Complete отправляет один нестриминговый запрос chat/completions и
// возвращает choices[0].message.content как есть.
func (e *Engine) Complete(ctx context.Context, in llm.Prompt) (any, error) {
	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": in.System},
			map[string]any{"role": "user", "content": in.User},
		},
		"temperature": in.Temperature,
		"stream":      false,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: openai %d: %s", llm.ErrUpstreamStatus, resp.StatusCode,
			util.Truncate(strings.TrimSpace(string(raw)), 1024))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var env any
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: openai: bad JSON body: %v", llm.ErrEnvelope, err)
	}
	return messageContent(env, raw)
}

func messageContent(env any, raw []byte) (any, error) {
	obj, _ := env.(map[string]any)
	choices, _ := obj["choices"].([]any)
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: openai: no choices; body=%s", llm.ErrEnvelope, util.Truncate(string(raw), 512))
	}
	first, _ := choices[0].(map[string]any)
	msg, ok := first["message"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: openai: choices[0].message missing; body=%s", llm.ErrEnvelope, util.Truncate(string(raw), 512))
	}
	return msg["content"], nil
}
