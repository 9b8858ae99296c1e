package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Callback metadata item names sent by M-Pesa
const (
	CallbackItemReceipt = "MpesaReceiptNumber"
	CallbackItemAmount  = "Amount"
	CallbackItemPhone   = "PhoneNumber"
)

// CallbackEnvelope is the wire shape of the STK push result notification.
type CallbackEnvelope struct {
	Body *struct {
		STKCallback *CallbackPayload `json:"stkCallback"`
	} `json:"Body"`
}

// CallbackPayload mirrors Body.stkCallback.
type CallbackPayload struct {
	ResultCode        *int              `json:"ResultCode"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultDesc        string            `json:"ResultDesc"`
}

// CallbackMetadata holds the name/value item list.
type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem is one name/value pair. Value may be a string or a number.
type CallbackItem struct {
	Value json.RawMessage `json:"Value,omitempty"`
	Name  string          `json:"Name"`
}

// STKCallback is the flat, typed form of a callback used inside the service.
type STKCallback struct {
	Receipt           *string
	Amount            *decimal.Decimal
	PhoneNumber       *string
	MerchantRequestID string
	CheckoutRequestID string
	ResultDesc        string
	ResultCode        int
}

// Flatten converts the wire payload into an STKCallback. Metadata items are
// matched by name; each is optional and independent.
func (p *CallbackPayload) Flatten() STKCallback {
	cb := STKCallback{
		MerchantRequestID: p.MerchantRequestID,
		CheckoutRequestID: p.CheckoutRequestID,
		ResultDesc:        p.ResultDesc,
	}
	if p.ResultCode != nil {
		cb.ResultCode = *p.ResultCode
	}
	if p.CallbackMetadata == nil {
		return cb
	}

	for _, item := range p.CallbackMetadata.Item {
		raw, ok := itemString(item.Value)
		if !ok {
			continue
		}
		switch item.Name {
		case CallbackItemReceipt:
			cb.Receipt = &raw
		case CallbackItemAmount:
			// The amount column rejects zero, so only positive amounts are carried.
			if amount, err := decimal.NewFromString(raw); err == nil && amount.IsPositive() {
				cb.Amount = &amount
			}
		case CallbackItemPhone:
			cb.PhoneNumber = &raw
		}
	}

	return cb
}

// itemString renders a JSON string or number as plain text.
func itemString(value json.RawMessage) (string, bool) {
	if len(value) == 0 || string(value) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(value, &n); err == nil {
		// MSISDNs arrive as numbers, sometimes in exponent form.
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d.String(), true
		}
		return n.String(), true
	}

	return "", false
}

// WebhookEvent is the aggregator event shape:
// {"event": "payment.success", "data": {...}}.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData is the data block of a WebhookEvent.
type WebhookEventData struct {
	Amount               *decimal.Decimal `json:"amount,omitempty"`
	ResultCode           *int             `json:"result_code,omitempty"`
	TransactionRequestID string           `json:"transaction_request_id"`
	Receipt              string           `json:"receipt,omitempty"`
	Phone                string           `json:"phone,omitempty"`
	ResultDesc           string           `json:"result_desc,omitempty"`
	Timestamp            string           `json:"timestamp,omitempty"`
}

// Webhook event names
const (
	EventPaymentSuccess = "payment.success"
	EventPaymentFailed  = "payment.failed"
)
