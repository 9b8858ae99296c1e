package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	return s == TransactionStatusPending || s.IsTerminal()
}

// Transaction is a single STK push attempt, keyed by the provider-issued request id
type Transaction struct {
	CreatedAt            time.Time         `db:"created_at"`
	UpdatedAt            time.Time         `db:"updated_at"`
	MpesaReceiptNumber   *string           `db:"mpesa_receipt_number"`
	ResultCode           *int              `db:"result_code"`
	ResultDescription    *string           `db:"result_description"`
	TransactionRequestID string            `db:"transaction_request_id"`
	PhoneNumber          string            `db:"phone_number"`
	Reference            string            `db:"reference"`
	Status               TransactionStatus `db:"status"`
	Amount               decimal.Decimal   `db:"amount"`
	ID                   uuid.UUID         `db:"id"`
}

// SettlementUpdate carries the fields a settlement signal may write.
//
// Nil fields leave the stored column untouched.
type SettlementUpdate struct {
	Receipt              *string
	ResultCode           *int
	ResultDescription    *string
	Amount               *decimal.Decimal
	PhoneNumber          *string
	TransactionRequestID string
	Status               TransactionStatus
}
