// Package client is a Go client for the payments HTTP API.
package client

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

	"github.com/shopspring/decimal"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the payments API.
type APIError struct {
	Message    string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payments api: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("payments api: %s (HTTP %d)", e.Message, e.StatusCode)
}

// InitiateRequest starts a payment. IdempotencyKey is sent as a header when set.
type InitiateRequest struct {
	Amount         *decimal.Decimal
	LoanAmount     *decimal.Decimal
	PhoneNumber    string
	Description    string
	IdempotencyKey string
}

// initiatePayload sends amounts as JSON numbers.
type initiatePayload struct {
	Amount      json.Number `json:"amount,omitempty"`
	LoanAmount  json.Number `json:"loanAmount,omitempty"`
	PhoneNumber string      `json:"phoneNumber"`
	Description string      `json:"description,omitempty"`
}

// Payment identifies an initiated payment.
type Payment struct {
	CheckoutRequestID    string          `json:"checkoutRequestId"`
	RequestID            string          `json:"requestId"`
	TransactionRequestID string          `json:"transactionRequestId"`
	ExternalReference    string          `json:"externalReference"`
	Reference            string          `json:"reference"`
	PhoneNumber          string          `json:"phoneNumber"`
	Amount               decimal.Decimal `json:"amount"`
}

// InitiateResponse is the answer to a successful initiation.
type InitiateResponse struct {
	Message  string  `json:"message"`
	Data     Payment `json:"data"`
	Success  bool    `json:"success"`
	Replayed bool    `json:"-"`
}

// PaymentStatus is the API's view of a payment.
type PaymentStatus struct {
	Receipt    *string `json:"receipt"`
	ResultCode *int    `json:"resultCode"`
	ResultDesc *string `json:"resultDesc"`
	Status     string  `json:"status"`
}

type statusResponse struct {
	Payment PaymentStatus `json:"payment"`
	Success bool          `json:"success"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client calls the payments API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client. A nil httpClient gets a default with a timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Initiate sends POST /api/initiate-payment.
func (c *Client) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	payload, err := json.Marshal(initiatePayload{
		Amount:      number(req.Amount),
		LoanAmount:  number(req.LoanAmount),
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/initiate-payment", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	var out InitiateResponse
	header, err := c.do(httpReq, &out)
	if err != nil {
		return nil, err
	}
	out.Replayed = header.Get("X-Idempotent-Replayed") == "true"

	return &out, nil
}

// Status sends GET /api/payment-status for a provider request id.
func (c *Client) Status(ctx context.Context, reference string) (*PaymentStatus, error) {
	endpoint := c.baseURL + "/api/payment-status?" + url.Values{"reference": {reference}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out statusResponse
	if _, err := c.do(httpReq, &out); err != nil {
		return nil, err
	}

	return &out.Payment, nil
}

func (c *Client) do(req *http.Request, out any) (http.Header, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Message != "" {
			apiErr.Message = e.Message
			apiErr.Code = e.Error
		}
		return nil, apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.Header, nil
}

func number(d *decimal.Decimal) json.Number {
	if d == nil {
		return ""
	}
	return json.Number(d.String())
}
