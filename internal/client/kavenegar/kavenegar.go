// Package kavenegar delivers OTP codes through the Kavenegar verify-lookup
// API. Delivery problems are reported to the caller but never block the
// login flow.
package kavenegar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
)

type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	template string
}

func NewClient(cfg *config.AuthConfig) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.KavenegarURL,
		apiKey:   cfg.KavenegarKey,
		template: cfg.OTPTemplate,
	}
}

// SendOTP fires a verify-lookup for the mobile number. The receptor is
// prefixed 0098 the way the SMS provider expects Iranian numbers.
func (c *Client) SendOTP(ctx context.Context, mobile, code string) error {
	q := url.Values{}
	q.Set("receptor", "0098"+mobile)
	q.Set("template", c.template)
	q.Set("token", code)

	u := fmt.Sprintf("%s/v1/%s/verify/lookup.json?%s", c.baseURL, c.apiKey, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kavenegar: status %d", resp.StatusCode)
	}
	return nil
}
