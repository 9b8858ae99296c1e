package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zenka/payments/internal/cache"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

const (
	darajaTimestampLayout = "20060102150405"
	darajaAccepted        = "0"
	darajaTokenSkew       = 60 * time.Second

	// Daraja field limits
	darajaAccountRefMax = 12
	darajaDescMax       = 13
)

// nairobi is East Africa Time, which has no daylight saving.
var nairobi = time.FixedZone("EAT", 3*60*60)

// Daraja talks to the Safaricom Daraja API directly.
type Daraja struct {
	httpClient *http.Client
	cache      cache.Cache
	logger     *slog.Logger
	now        func() time.Time
	cfg        config.DarajaConfig
}

type darajaTokenResponse struct {
	AccessToken  string      `json:"access_token"`
	ExpiresIn    json.Number `json:"expires_in"`
	ErrorMessage string      `json:"errorMessage"`
}

type darajaSTKRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
	Amount            int64  `json:"Amount"`
}

type darajaSTKResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

type darajaQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type darajaQueryResponse struct {
	ResultCode          flexibleString `json:"ResultCode"`
	ResponseCode        string         `json:"ResponseCode"`
	ResponseDescription string         `json:"ResponseDescription"`
	ResultDesc          string         `json:"ResultDesc"`
	ErrorCode           string         `json:"errorCode"`
	ErrorMessage        string         `json:"errorMessage"`
}

// NewDaraja creates a Daraja client. The cache may be nil, in which case
// a fresh OAuth token is requested for every call.
func NewDaraja(cfg config.DarajaConfig, httpClient *http.Client, c cache.Cache, logger *slog.Logger) *Daraja {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Daraja{
		httpClient: httpClient,
		cache:      c,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

func (d *Daraja) Name() string {
	return config.ProviderDaraja
}

func (d *Daraja) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResult, error) {
	token, err := d.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	password, timestamp := d.password()

	partyB := d.cfg.PartyB
	if partyB == "" {
		partyB = d.cfg.ShortCode
	}
	accountRef := firstNonEmpty(d.cfg.AccountReference, req.Reference)

	httpReq, err := newJSONRequest(ctx, http.MethodPost, d.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", darajaSTKRequest{
		BusinessShortCode: d.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   d.cfg.TransactionType,
		Amount:            req.Amount.Ceil().IntPart(),
		PartyA:            req.PhoneNumber,
		PartyB:            partyB,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       req.CallbackURL,
		AccountReference:  truncate(accountRef, darajaAccountRefMax),
		TransactionDesc:   truncate(req.Description, darajaDescMax),
	})
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := do(d.httpClient, httpReq)
	if err != nil {
		d.logger.Error("daraja request failed", "reference", req.Reference, "error", err)
		return nil, err
	}

	var body darajaSTKResponse
	if err := resp.decode(&body); err != nil {
		d.logger.Error("daraja returned malformed response",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	if body.ResponseCode != darajaAccepted {
		message := firstNonEmpty(body.ErrorMessage, body.ResponseDescription, "Payment initiation failed")
		d.logger.Warn("daraja rejected stk push",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"error_code", body.ErrorCode,
			"message", message,
		)
		return nil, &RejectedError{Provider: d.Name(), StatusCode: resp.StatusCode, Message: message}
	}

	if body.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: daraja accepted without CheckoutRequestID", ErrUpstreamMalformed)
	}

	return &STKPushResult{
		Accepted:          true,
		ProviderRequestID: body.CheckoutRequestID,
		RawMessage:        firstNonEmpty(body.CustomerMessage, body.ResponseDescription),
	}, nil
}

func (d *Daraja) QueryStatus(ctx context.Context, providerRequestID string) (*StatusResult, error) {
	token, err := d.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	password, timestamp := d.password()

	httpReq, err := newJSONRequest(ctx, http.MethodPost, d.cfg.BaseURL+"/mpesa/stkpushquery/v1/query", darajaQueryRequest{
		BusinessShortCode: d.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		CheckoutRequestID: providerRequestID,
	})
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := do(d.httpClient, httpReq)
	if err != nil {
		return nil, err
	}

	var body darajaQueryResponse
	if err := resp.decode(&body); err != nil {
		return nil, err
	}

	// Daraja answers queries for in-flight pushes with an error body.
	if strings.Contains(strings.ToLower(body.ErrorMessage), "being processed") {
		return &StatusResult{Status: models.TransactionStatusPending}, nil
	}

	code := body.ResultCode.intPtr()
	if code == nil {
		if body.ErrorMessage != "" || !resp.ok() {
			return nil, &RejectedError{
				Provider:   d.Name(),
				StatusCode: resp.StatusCode,
				Message:    firstNonEmpty(body.ErrorMessage, body.ResponseDescription, "Status query failed"),
			}
		}
		return &StatusResult{Status: models.TransactionStatusPending}, nil
	}

	status := models.TransactionStatusFailed
	if *code == 0 {
		status = models.TransactionStatusSuccess
	}

	return &StatusResult{
		Status:     status,
		ResultCode: code,
		ResultDesc: body.ResultDesc,
	}, nil
}

// accessToken returns a cached OAuth token or fetches a new one.
func (d *Daraja) accessToken(ctx context.Context) (string, error) {
	var key string
	if d.cache != nil {
		key = d.cache.GenerateKey("daraja-token", d.cfg.ShortCode)
		token, err := d.cache.Get(ctx, key)
		if err != nil {
			d.logger.Warn("failed to read cached daraja token", "error", err)
		}
		if token != "" {
			return token, nil
		}
	}

	url := d.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	httpReq, err := newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(d.cfg.ConsumerKey, d.cfg.ConsumerSecret)

	resp, err := do(d.httpClient, httpReq)
	if err != nil {
		d.logger.Error("daraja token request failed", "error", err)
		return "", err
	}

	if !resp.ok() {
		var failure darajaTokenResponse
		_ = json.Unmarshal(resp.Body, &failure)
		return "", &RejectedError{
			Provider:   d.Name(),
			StatusCode: resp.StatusCode,
			Message:    firstNonEmpty(failure.ErrorMessage, "Invalid credentials"),
		}
	}

	var body darajaTokenResponse
	if err := resp.decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: daraja token response without access_token", ErrUpstreamMalformed)
	}

	if d.cache != nil {
		if seconds, err := body.ExpiresIn.Int64(); err == nil {
			ttl := time.Duration(seconds)*time.Second - darajaTokenSkew
			if ttl > 0 {
				if err := d.cache.Set(ctx, key, body.AccessToken, ttl); err != nil {
					d.logger.Warn("failed to cache daraja token", "error", err)
				}
			}
		}
	}

	return body.AccessToken, nil
}

// password derives the Lipa Na M-Pesa Online password and its timestamp.
func (d *Daraja) password() (string, string) {
	timestamp := d.now().In(nairobi).Format(darajaTimestampLayout)
	raw := d.cfg.ShortCode + d.cfg.PassKey + timestamp
	return base64.StdEncoding.EncodeToString([]byte(raw)), timestamp
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
