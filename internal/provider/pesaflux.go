package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

const pesaFluxSuccess = "200"

// PesaFlux talks to the PesaFlux aggregator, which wraps the telco STK push.
type PesaFlux struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	email      string
}

type pesaFluxInitiateRequest struct {
	APIKey      string `json:"api_key"`
	Email       string `json:"email"`
	Amount      string `json:"amount"`
	MSISDN      string `json:"msisdn"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type pesaFluxInitiateResponse struct {
	Success              flexibleString `json:"success"`
	Massage              string         `json:"massage"`
	Message              string         `json:"message"`
	TransactionRequestID string         `json:"transaction_request_id"`
}

type pesaFluxStatusRequest struct {
	APIKey               string `json:"api_key"`
	Email                string `json:"email"`
	TransactionRequestID string `json:"transaction_request_id"`
}

type pesaFluxStatusResponse struct {
	ResultCode         flexibleString `json:"ResultCode"`
	TransactionAmount  flexibleString `json:"TransactionAmount"`
	Success            flexibleString `json:"success"`
	TransactionStatus  string         `json:"TransactionStatus"`
	TransactionReceipt string         `json:"TransactionReceipt"`
	ResultDesc         string         `json:"ResultDesc"`
	Msisdn             string         `json:"Msisdn"`
	Massage            string         `json:"massage"`
	Message            string         `json:"message"`
}

// NewPesaFlux creates a PesaFlux client
func NewPesaFlux(cfg config.PesaFluxConfig, httpClient *http.Client, logger *slog.Logger) *PesaFlux {
	return &PesaFlux{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		email:      cfg.Email,
	}
}

func (p *PesaFlux) Name() string {
	return config.ProviderPesaFlux
}

func (p *PesaFlux) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResult, error) {
	httpReq, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/v1/initiatestk", pesaFluxInitiateRequest{
		APIKey:      p.apiKey,
		Email:       p.email,
		Amount:      req.Amount.String(),
		MSISDN:      req.PhoneNumber,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		return nil, err
	}

	resp, err := do(p.httpClient, httpReq)
	if err != nil {
		p.logger.Error("pesaflux request failed", "reference", req.Reference, "error", err)
		return nil, err
	}

	var body pesaFluxInitiateResponse
	if err := resp.decode(&body); err != nil {
		p.logger.Error("pesaflux returned malformed response",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	message := firstNonEmpty(body.Massage, body.Message)
	if string(body.Success) != pesaFluxSuccess {
		p.logger.Warn("pesaflux rejected stk push",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"message", message,
		)
		return nil, &RejectedError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    firstNonEmpty(message, "Payment initiation failed"),
		}
	}

	if body.TransactionRequestID == "" {
		return nil, fmt.Errorf("%w: pesaflux accepted without transaction_request_id", ErrUpstreamMalformed)
	}

	return &STKPushResult{
		Accepted:          true,
		ProviderRequestID: body.TransactionRequestID,
		RawMessage:        message,
	}, nil
}

func (p *PesaFlux) QueryStatus(ctx context.Context, providerRequestID string) (*StatusResult, error) {
	httpReq, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/v1/transactionstatus", pesaFluxStatusRequest{
		APIKey:               p.apiKey,
		Email:                p.email,
		TransactionRequestID: providerRequestID,
	})
	if err != nil {
		return nil, err
	}

	resp, err := do(p.httpClient, httpReq)
	if err != nil {
		return nil, err
	}

	var body pesaFluxStatusResponse
	if err := resp.decode(&body); err != nil {
		return nil, err
	}

	if body.TransactionStatus == "" {
		if !resp.ok() || (body.Success != "" && string(body.Success) != pesaFluxSuccess) {
			return nil, &RejectedError{
				Provider:   p.Name(),
				StatusCode: resp.StatusCode,
				Message:    firstNonEmpty(body.Massage, body.Message, "Status query failed"),
			}
		}
	}

	result := &StatusResult{
		Status:     pesaFluxStatus(body.TransactionStatus),
		ResultCode: body.ResultCode.intPtr(),
		ResultDesc: body.ResultDesc,
		Phone:      body.Msisdn,
	}
	if result.Status == models.TransactionStatusSuccess {
		result.Receipt = body.TransactionReceipt
	}
	if amount, err := decimal.NewFromString(string(body.TransactionAmount)); err == nil {
		result.Amount = &amount
	}

	return result, nil
}

func pesaFluxStatus(s string) models.TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "success", "successful":
		return models.TransactionStatusSuccess
	case "failed", "cancelled", "canceled":
		return models.TransactionStatusFailed
	default:
		return models.TransactionStatusPending
	}
}
