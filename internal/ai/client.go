package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultBaseURL - базовый адрес API генерации
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrRetriesExhausted возвращается, когда все повторные попытки исчерпаны.
// Оборачивает последнюю транзиентную ошибку, не проглатывая её.
var ErrRetriesExhausted = errors.New("ai: retry attempts exhausted")

// RequestError представляет невосстановимый отказ сервиса (4xx кроме 429).
// Повторные попытки для него не выполняются; Message несет сообщение
// об ошибке из ответа сервиса, если оно присутствовало.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: request rejected with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai: request rejected with status %d", e.StatusCode)
}

// RetryPolicy описывает политику повторных попыток отдельно от транспорта,
// чтобы её можно было тестировать с фиктивными часами.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy - политика по умолчанию: 5 попыток, базовая задержка 1 секунда
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   1000 * time.Millisecond,
	}
}

// Delay возвращает экспоненциальную задержку перед повтором после попытки attempt (0-based)
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

// IsRetryable сообщает, оправдан ли повтор для данного HTTP-статуса
func (p RetryPolicy) IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// Client выполняет вызовы generateContent с повторными попытками.
// Состояние между вызовами не сохраняется; единственный побочный
// эффект - сам исходящий запрос.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	policy     RetryPolicy
	httpClient *http.Client

	// sleep подменяется в тестах, чтобы не ждать реальные задержки
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient создает новый клиент генеративного сервиса
func NewClient(apiKey, model, baseURL string, policy RetryPolicy, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		policy:     policy,
		httpClient: &http.Client{Timeout: timeout},
		sleep:      sleepContext,
	}
}

// Configured сообщает, задан ли ключ API
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate выполняет запрос generateContent с экспоненциальным backoff.
// Повтор при 429, любом 5xx и сетевых ошибках; остальные 4xx возвращаются
// сразу как *RequestError. После исчерпания попыток последняя транзиентная
// ошибка оборачивается в ErrRetriesExhausted.
func (c *Client) Generate(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ai: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.policy.Delay(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := c.doAttempt(ctx, url, body)
		if err == nil {
			return resp, nil
		}

		// Невосстановимый отказ не повторяем
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return nil, err
		}

		lastErr = err
		log.Printf("[AIClient] Попытка %d/%d не удалась: %v", attempt+1, c.policy.MaxAttempts, err)
	}

	return nil, fmt.Errorf("%w: last error: %v", ErrRetriesExhausted, lastErr)
}

// doAttempt выполняет ровно один HTTP-вызов
func (c *Client) doAttempt(ctx context.Context, url string, body []byte) (*GenerateContentResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Сетевая ошибка считается транзиентной
		return nil, fmt.Errorf("ai: transport error: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("ai: failed to read response body: %w", err)
	}

	if c.policy.IsRetryable(httpResp.StatusCode) {
		return nil, fmt.Errorf("ai: upstream returned status %d", httpResp.StatusCode)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			StatusCode: httpResp.StatusCode,
			Message:    extractErrorMessage(respBody),
		}
	}

	var resp GenerateContentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &RequestError{
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("unparseable response body: %v", err),
		}
	}
	return &resp, nil
}

// extractErrorMessage достает error.message из тела ошибки сервиса, если оно есть
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}

// sleepContext ждет указанную задержку, не блокируя другие запросы,
// и прерывается при отмене контекста
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
