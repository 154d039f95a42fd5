// README: HTTP client for the dispatch system's order endpoints.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrOrderRejected = errors.New("dispatch: order rejected")

// Client submits compiled orders to the dispatch system, authenticating with
// a bearer token from the shared TokenSource.
type Client struct {
	baseURL string
	tokens  *TokenSource
	client  *http.Client
}

func NewClient(baseURL string, tokens *TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error,omitempty"`
}

// CreateOrder posts the payload to the order-creation endpoint and returns
// the dispatch system's assigned order identifier.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/orders", payload)
	if err != nil {
		return "", err
	}

	var cr createOrderResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("dispatch: unmarshal create response: %w", err)
	}
	if cr.OrderID == "" {
		return "", fmt.Errorf("%w: response missing order_id (raw: %s)", ErrOrderRejected, raw)
	}
	return cr.OrderID, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPost, c.baseURL+"/orders/"+orderID+"/cancel", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("dispatch: marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("dispatch: build request: %w", err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatch: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dispatch: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d (raw: %s)", ErrOrderRejected, resp.StatusCode, raw)
	}
	return raw, nil
}
