// Package snapppay is the client for the installment gateway. The payment
// lifecycle is token -> eligibility -> payment token -> verify -> settle,
// with cancel/update as side endpoints. Every amount crossing this API is in
// Rial (the shop's Toman prices multiplied by ten).
package snapppay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
)

type Client struct {
	http         *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	username     string
	password     string
	returnURL    string
}

func NewClient(cfg *config.SnappPayConfig) *Client {
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		username:     cfg.Username,
		password:     cfg.Password,
		returnURL:    cfg.ReturnURL,
	}
}

// ReturnURL is the storefront address the gateway redirects back to.
func (c *Client) ReturnURL() string {
	return c.returnURL
}

// Token obtains a bearer token via the password grant.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("scope", "online-merchant")
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/online/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("snapppay: token status %d", resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("snapppay: empty access token")
	}
	return parsed.AccessToken, nil
}

// EligibleInfo carries the eligibility verdict plus the promotional copy the
// storefront shows next to the installment option.
type EligibleInfo struct {
	Eligible     bool   `json:"eligible"`
	TitleMessage string `json:"title_message"`
	Description  string `json:"description"`
}

// Eligible checks whether an amount (Rial) qualifies for installments.
func (c *Client) Eligible(ctx context.Context, bearer string, amountRial int) (EligibleInfo, error) {
	u := fmt.Sprintf("%s/api/online/offer/v1/eligible?amount=%d", c.baseURL, amountRial)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return EligibleInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return EligibleInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EligibleInfo{}, fmt.Errorf("snapppay: eligible status %d", resp.StatusCode)
	}

	var parsed struct {
		Response struct {
			Eligible     bool   `json:"eligible"`
			TitleMessage string `json:"title_message"`
			Description  string `json:"description"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return EligibleInfo{}, err
	}
	return EligibleInfo{
		Eligible:     parsed.Response.Eligible,
		TitleMessage: parsed.Response.TitleMessage,
		Description:  parsed.Response.Description,
	}, nil
}

// CartItem mirrors the gateway's cart line schema; Amount is Rial.
type CartItem struct {
	ID             int64  `json:"id"`
	Amount         int    `json:"amount"`
	Category       string `json:"category"`
	Count          int    `json:"count"`
	Name           string `json:"name"`
	CommissionType string `json:"commissionType"`
}

type CartRecord struct {
	CartID             int64      `json:"cartId"`
	CartItems          []CartItem `json:"cartItems"`
	IsShipmentIncluded bool       `json:"isShipmentIncluded"`
	IsTaxIncluded      bool       `json:"isTaxIncluded"`
	ShippingAmount     int        `json:"shippingAmount"`
	TaxAmount          int        `json:"taxAmount"`
	TotalAmount        int        `json:"totalAmount"`
}

type TokenRequest struct {
	Amount               int          `json:"amount"`
	CartList             []CartRecord `json:"cartList"`
	DiscountAmount       int          `json:"discountAmount"`
	ExternalSourceAmount int          `json:"externalSourceAmount"`
	Mobile               string       `json:"mobile"`
	PaymentMethodTypeDto string       `json:"paymentMethodTypeDto"`
	ReturnURL            string       `json:"returnURL"`
	TransactionID        string       `json:"transactionId"`
}

// PaymentToken starts a payment and returns the gateway token plus the page
// the shopper is redirected to.
func (c *Client) PaymentToken(ctx context.Context, bearer string, request TokenRequest) (paymentToken, pageURL string, err error) {
	var parsed struct {
		Response struct {
			PaymentToken   string `json:"paymentToken"`
			PaymentPageURL string `json:"paymentPageUrl"`
		} `json:"response"`
	}
	if err := c.postJSON(ctx, bearer, "/api/online/payment/v1/token", request, &parsed); err != nil {
		return "", "", err
	}
	if parsed.Response.PaymentToken == "" || parsed.Response.PaymentPageURL == "" {
		return "", "", fmt.Errorf("snapppay: payment token response missing fields")
	}
	return parsed.Response.PaymentToken, parsed.Response.PaymentPageURL, nil
}

// TxResult is the common verify/settle/cancel/update response shape.
type TxResult struct {
	Successful    bool
	TransactionID string
}

type txResponse struct {
	Successful bool `json:"successful"`
	Response   struct {
		TransactionID string `json:"transactionId"`
	} `json:"response"`
}

func (c *Client) Verify(ctx context.Context, bearer, paymentToken string) (TxResult, error) {
	return c.txCall(ctx, bearer, "/api/online/payment/v1/verify", paymentToken)
}

// Settle finalizes a verified payment. Callers must compare the returned
// transaction id against the one stored at verify time.
func (c *Client) Settle(ctx context.Context, bearer, paymentToken string) (TxResult, error) {
	return c.txCall(ctx, bearer, "/api/online/payment/v1/settle", paymentToken)
}

func (c *Client) Cancel(ctx context.Context, bearer, paymentToken string) (TxResult, error) {
	return c.txCall(ctx, bearer, "/api/online/payment/v1/cancel", paymentToken)
}

func (c *Client) txCall(ctx context.Context, bearer, path, paymentToken string) (TxResult, error) {
	var parsed txResponse
	err := c.postJSON(ctx, bearer, path, map[string]string{"paymentToken": paymentToken}, &parsed)
	if err != nil {
		return TxResult{}, err
	}
	return TxResult{
		Successful:    parsed.Successful,
		TransactionID: parsed.Response.TransactionID,
	}, nil
}

type UpdateRequest struct {
	Amount               int          `json:"amount"`
	CartList             []CartRecord `json:"cartList"`
	DiscountAmount       int          `json:"discountAmount"`
	ExternalSourceAmount int          `json:"externalSourceAmount"`
	PaymentMethodTypeDto string       `json:"paymentMethodTypeDto"`
	PaymentToken         string       `json:"paymentToken"`
}

// Update pushes a revised amount/cart for an existing payment.
func (c *Client) Update(ctx context.Context, bearer string, request UpdateRequest) (TxResult, error) {
	var parsed txResponse
	if err := c.postJSON(ctx, bearer, "/api/online/payment/v1/update", request, &parsed); err != nil {
		return TxResult{}, err
	}
	return TxResult{
		Successful:    parsed.Successful,
		TransactionID: parsed.Response.TransactionID,
	}, nil
}

// StatusResult is the payment-status inquiry used as a fallback when verify
// itself cannot be reached.
type StatusResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	Successful    bool   `json:"successful"`
}

func (c *Client) PaymentStatus(ctx context.Context, bearer, paymentToken string) (StatusResult, error) {
	u := fmt.Sprintf("%s/api/online/payment/v1/status?paymentToken=%s", c.baseURL, url.QueryEscape(paymentToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return StatusResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return StatusResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusResult{}, fmt.Errorf("snapppay: status call status %d", resp.StatusCode)
	}

	var parsed struct {
		Successful bool `json:"successful"`
		Response   struct {
			TransactionID string `json:"transactionId"`
			Status        string `json:"status"`
			Amount        int64  `json:"amount"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return StatusResult{}, err
	}
	return StatusResult{
		TransactionID: parsed.Response.TransactionID,
		Status:        parsed.Response.Status,
		Amount:        parsed.Response.Amount,
		Successful:    parsed.Successful,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, bearer, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("snapppay: %s status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
