// Package stockmgmt pushes stock counts to the external inventory system.
// The push is fire-and-forget: failures are logged by callers, never
// retried inline.
package stockmgmt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
)

type Client struct {
	http   *http.Client
	url    string
	apiKey string
}

func NewClient(cfg *config.StockManagementConfig) *Client {
	return &Client{
		http:   &http.Client{Timeout: 10 * time.Second},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}
}

// PushStock reports the current stock for a product code.
func (c *Client) PushStock(ctx context.Context, productCode string, stock int) error {
	raw, err := json.Marshal(map[string]interface{}{
		"product_code": productCode,
		"stock":        stock,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stockmgmt: status %d", resp.StatusCode)
	}
	return nil
}
