package platform_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/port"
)

// RequestObserver получает длительность и итог каждого запроса (метрики).
type RequestObserver interface {
	ObservePlatformRequest(operation string, status int, elapsed time.Duration, err error)
}

type Options struct {
	BaseURL string
	APIKey  string
	// StoreBaseURL - публичный адрес витрины, на него платформа вернет
	// покупателя после оформления (/checkout-success).
	StoreBaseURL string
	Timeout      time.Duration
	Observer     RequestObserver
}

// Client - HTTP-клиент удаленной коммерческой платформы.
type Client struct {
	baseURL      string
	apiKey       string
	storeBaseURL string
	httpClient   *http.Client
	observer     RequestObserver
}

var _ port.PlatformPort = (*Client)(nil)

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		apiKey:       opts.APIKey,
		storeBaseURL: strings.TrimRight(opts.StoreBaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		observer:     opts.Observer,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(constants.HeaderTraceID, traceID)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	// токен участника передается как есть, платформа сама решает, кто это
	if token := contextkeys.MemberTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// call выполняет запрос и декодирует ответ в out.
// found == false, если платформа ответила 404: отсутствие сущности - не ошибка клиента.
func (c *Client) call(ctx context.Context, operation, method, path string, in, out any) (found bool, err error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PlatformClient",
		"method":    operation,
	})
	clientLogger.Debug("Sending request to platform", port.Fields{"path": path})

	start := time.Now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer.ObservePlatformRequest(operation, status, time.Since(start), err)
		}
	}()

	resp, err := c.doRequest(ctx, method, path, in)
	if err != nil {
		clientLogger.Error("Failed to perform request to platform", err, nil)
		return false, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode == http.StatusNotFound {
		clientLogger.Debug("Platform returned not found", nil)
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
		clientLogger.Error("Received error response from platform", apiErr, port.Fields{"status_code": resp.StatusCode})
		return false, apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		clientLogger.Error("Failed to decode response from platform", err, nil)
		return false, fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	return true, nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
