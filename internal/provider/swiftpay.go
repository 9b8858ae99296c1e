package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

// SwiftPay talks to a reseller backend that fronts the telco STK push.
// Its initiation response shape varies between deployments.
type SwiftPay struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	tillID     string
}

type swiftPayInitiateRequest struct {
	PhoneNumber string      `json:"phone_number"`
	Amount      json.Number `json:"amount"`
	TillID      string      `json:"till_id"`
}

type swiftPayData struct {
	CheckoutID        string `json:"checkout_id"`
	RequestID         string `json:"request_id"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type swiftPayInitiateResponse struct {
	Success              *bool         `json:"success"`
	Data                 *swiftPayData `json:"data"`
	Status               string        `json:"status"`
	Message              string        `json:"message"`
	Error                string        `json:"error"`
	CheckoutRequestID    string        `json:"CheckoutRequestID"`
	CheckoutID           string        `json:"checkout_id"`
	TransactionRequestID string        `json:"transaction_request_id"`
}

type swiftPayStatusRequest struct {
	CheckoutID string `json:"checkoutId"`
	APIKey     string `json:"apiKey"`
}

type swiftPayStatusResponse struct {
	Payment *struct {
		ResultCode flexibleString `json:"resultCode"`
		Amount     flexibleString `json:"amount"`
		Status     string         `json:"status"`
		Receipt    string         `json:"receipt"`
		ResultDesc string         `json:"resultDesc"`
		Phone      string         `json:"phone"`
	} `json:"payment"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewSwiftPay creates a SwiftPay client
func NewSwiftPay(cfg config.SwiftPayConfig, httpClient *http.Client, logger *slog.Logger) *SwiftPay {
	return &SwiftPay{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		tillID:     cfg.TillID,
	}
}

func (s *SwiftPay) Name() string {
	return config.ProviderSwiftPay
}

func (s *SwiftPay) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResult, error) {
	httpReq, err := newJSONRequest(ctx, http.MethodPost, s.baseURL+"/api/mpesa/stk-push-api", swiftPayInitiateRequest{
		PhoneNumber: req.PhoneNumber,
		Amount:      json.Number(req.Amount.String()),
		TillID:      s.tillID,
	})
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := do(s.httpClient, httpReq)
	if err != nil {
		s.logger.Error("swiftpay request failed", "reference", req.Reference, "error", err)
		return nil, err
	}

	var body swiftPayInitiateResponse
	if err := resp.decode(&body); err != nil {
		s.logger.Error("swiftpay returned malformed response",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	id := body.requestID()
	if !body.accepted(resp.ok(), id) {
		message := firstNonEmpty(body.Message, body.Error, "Payment initiation failed")
		s.logger.Warn("swiftpay rejected stk push",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"message", message,
		)
		return nil, &RejectedError{Provider: s.Name(), StatusCode: resp.StatusCode, Message: message}
	}

	if id == "" {
		return nil, fmt.Errorf("%w: swiftpay accepted without a checkout id", ErrUpstreamMalformed)
	}

	return &STKPushResult{
		Accepted:          true,
		ProviderRequestID: id,
		RawMessage:        body.Message,
	}, nil
}

// accepted checks the success indicators in priority order.
func (r *swiftPayInitiateResponse) accepted(httpOK bool, id string) bool {
	if r.Success != nil {
		return *r.Success
	}
	if r.Status != "" {
		return strings.EqualFold(r.Status, "success")
	}
	return httpOK && id != ""
}

// requestID picks the first non-empty id field in priority order.
func (r *swiftPayInitiateResponse) requestID() string {
	var nested []string
	if r.Data != nil {
		nested = []string{r.Data.CheckoutID, r.Data.RequestID, r.Data.CheckoutRequestID}
	}
	return firstNonEmpty(append(nested, r.CheckoutRequestID, r.CheckoutID, r.TransactionRequestID)...)
}

func (s *SwiftPay) QueryStatus(ctx context.Context, providerRequestID string) (*StatusResult, error) {
	httpReq, err := newJSONRequest(ctx, http.MethodPost, s.baseURL+"/api/mpesa-verification-proxy", swiftPayStatusRequest{
		CheckoutID: providerRequestID,
		APIKey:     s.apiKey,
	})
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := do(s.httpClient, httpReq)
	if err != nil {
		return nil, err
	}

	var body swiftPayStatusResponse
	if err := resp.decode(&body); err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, &RejectedError{
			Provider:   s.Name(),
			StatusCode: resp.StatusCode,
			Message:    firstNonEmpty(body.Message, body.Error, "Status query failed"),
		}
	}

	if body.Payment == nil {
		return &StatusResult{Status: models.TransactionStatusPending}, nil
	}

	result := &StatusResult{
		Status:     swiftPayStatus(body.Payment.Status),
		ResultCode: body.Payment.ResultCode.intPtr(),
		ResultDesc: body.Payment.ResultDesc,
		Phone:      body.Payment.Phone,
	}
	if result.Status == models.TransactionStatusSuccess {
		result.Receipt = body.Payment.Receipt
	}
	if amount, err := decimal.NewFromString(string(body.Payment.Amount)); err == nil {
		result.Amount = &amount
	}

	return result, nil
}

func swiftPayStatus(s string) models.TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "completed":
		return models.TransactionStatusSuccess
	case "failed", "cancelled", "canceled":
		return models.TransactionStatusFailed
	default:
		return models.TransactionStatusPending
	}
}
