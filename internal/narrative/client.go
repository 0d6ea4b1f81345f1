// Package narrative supplies game events: an HTTP adapter for the external
// event-generation service, a pre-authored fallback pool, and a composite
// source that prefers the service and falls back transparently.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/stonefall/internal/game"
)

// Client calls the external narrative event-generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a service adapter. Returns nil when baseURL is empty
// (service disabled; callers fall back to the static pool).
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Enabled reports whether the client is configured.
func (c *Client) Enabled() bool { return c != nil && c.baseURL != "" }

// requestPayload is the wire request.
type requestPayload struct {
	Era          string          `json:"era"`
	Tick         uint64          `json:"tick"`
	Population   int             `json:"population"`
	Resources    resourcePayload `json:"resources"`
	RecentEvents []string        `json:"recentEvents"`
}

type resourcePayload struct {
	Food  float64 `json:"food"`
	Wood  float64 `json:"wood"`
	Stone float64 `json:"stone"`
	Gold  float64 `json:"gold"`
}

// responsePayload is the wire response. A null event means "no event this
// cycle" and is treated as absence, not an error.
type responsePayload struct {
	Event  *game.GameEvent `json:"event"`
	Source string          `json:"source,omitempty"`
}

// Generate requests one event from the service. HTTP 4xx is rejected
// without retry; 5xx and transport errors are retried with exponential
// backoff up to maxRetries; malformed or schema-invalid bodies are
// rejected. All failures surface as errors so the composite source can
// substitute a fallback event.
func (c *Client) Generate(ctx context.Context, ec game.EventContext) (*game.GameEvent, error) {
	payload := requestPayload{
		Era:        ec.Era.String(),
		Tick:       ec.Tick,
		Population: ec.Population,
		Resources: resourcePayload{
			Food:  ec.Resources.Food,
			Wood:  ec.Resources.Wood,
			Stone: ec.Resources.Stone,
			Gold:  ec.Resources.Gold,
		},
		RecentEvents: ec.RecentEvents,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		ev, retry, err := c.post(ctx, body)
		if err == nil {
			return ev, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
		slog.Debug("event service call failed, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

// post performs one request. The second return value reports whether the
// failure is retryable.
func (c *Client) post(ctx context.Context, body []byte) (*game.GameEvent, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/events/generate", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("event service call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("event service error %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("event service rejected request: %d", resp.StatusCode)
	}

	if err := ValidateResponse(respBody); err != nil {
		return nil, false, fmt.Errorf("invalid event payload: %w", err)
	}

	var parsed responsePayload
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, false, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Event, false, nil
}
