// Package zarinpal is the client for the primary bank gateway. The protocol
// is a pair of JSON POSTs (payment request and verify); success is encoded
// as data.code == 100 and the authority token is round-tripped through the
// StartPay redirect.
package zarinpal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
)

const successCode = 100

// CodeError is a gateway-level rejection: HTTP transport worked but the
// gateway answered with a non-success code.
type CodeError struct {
	Code int
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("zarinpal: status code = %d", e.Code)
}

type Client struct {
	http        *http.Client
	merchantID  string
	baseURL     string
	startPayURL string
	callbackURL string
}

func NewClient(cfg *config.ZarinpalConfig) *Client {
	return &Client{
		http:        &http.Client{Timeout: 10 * time.Second},
		merchantID:  cfg.MerchantID,
		baseURL:     cfg.BaseURL,
		startPayURL: cfg.StartPayURL,
		callbackURL: cfg.CallbackURL,
	}
}

type paymentData struct {
	Code      int    `json:"code"`
	Authority string `json:"authority"`
	RefID     int64  `json:"ref_id"`
}

type paymentResponse struct {
	Data paymentData `json:"data"`
}

func (c *Client) post(ctx context.Context, url string, body interface{}) (*paymentData, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zarinpal: unexpected status %d", resp.StatusCode)
	}

	var parsed paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if parsed.Data.Code != successCode {
		return nil, &CodeError{Code: parsed.Data.Code}
	}
	return &parsed.Data, nil
}

// RequestPayment asks for an authority token. Amount is in Rial.
func (c *Client) RequestPayment(ctx context.Context, amountRial int, description string) (string, error) {
	data, err := c.post(ctx, c.baseURL+"/pg/v4/payment/request.json", map[string]interface{}{
		"merchant_id":  c.merchantID,
		"amount":       amountRial,
		"description":  description,
		"callback_url": c.callbackURL,
	})
	if err != nil {
		return "", err
	}
	return data.Authority, nil
}

// VerifyPayment confirms a callback and returns the gateway reference id.
func (c *Client) VerifyPayment(ctx context.Context, amountRial int, authority string) (int64, error) {
	data, err := c.post(ctx, c.baseURL+"/pg/v4/payment/verify.json", map[string]interface{}{
		"merchant_id": c.merchantID,
		"amount":      amountRial,
		"authority":   authority,
	})
	if err != nil {
		return 0, err
	}
	return data.RefID, nil
}

// StartPayURL is where the shopper is redirected to pay.
func (c *Client) StartPayURL(authority string) string {
	return c.startPayURL + authority
}
