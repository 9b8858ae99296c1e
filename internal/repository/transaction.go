// Package repository provides data access layer implementations for the payments API.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/zenka/payments/internal/db"
	"github.com/zenka/payments/internal/models"
)

const uniqueViolation = "23505"

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByRequestID(ctx context.Context, transactionRequestID string) (*models.Transaction, error)
	// UpdateStatus moves a pending transaction to a terminal state.
	// It reports false when no pending row matched.
	UpdateStatus(ctx context.Context, update models.SettlementUpdate) (bool, error)
}

type transactionRepository struct {
	db *db.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(database *db.DB) TransactionRepository {
	return &transactionRepository{db: database}
}

// Create inserts a new transaction and fills in the server-assigned timestamps
func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Status == "" {
		tx.Status = models.TransactionStatusPending
	}

	query := `
		INSERT INTO transactions (
			id, transaction_request_id, amount, phone_number, status, reference,
			mpesa_receipt_number, result_code, result_description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		tx.ID,
		tx.TransactionRequestID,
		tx.Amount,
		tx.PhoneNumber,
		tx.Status,
		tx.Reference,
		tx.MpesaReceiptNumber,
		tx.ResultCode,
		tx.ResultDescription,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("transaction_request_id %s: %w", tx.TransactionRequestID, models.ErrDuplicateTransaction)
	}
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByRequestID retrieves a transaction by its provider-issued request id
func (r *transactionRepository) FindByRequestID(ctx context.Context, transactionRequestID string) (*models.Transaction, error) {
	query := `
		SELECT id, transaction_request_id, amount, phone_number, status, reference,
		       mpesa_receipt_number, result_code, result_description, created_at, updated_at
		FROM transactions
		WHERE transaction_request_id = $1
	`

	var tx models.Transaction
	err := r.db.GetContext(ctx, &tx, query, transactionRequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", transactionRequestID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by request id: %w", err)
	}

	return &tx, nil
}

// UpdateStatus writes the terminal status and every supplied settlement field
// in one statement, guarded on the row still being pending.
func (r *transactionRepository) UpdateStatus(ctx context.Context, update models.SettlementUpdate) (bool, error) {
	if !update.Status.IsTerminal() {
		return false, fmt.Errorf("invalid settlement status %q", update.Status)
	}

	query := `
		UPDATE transactions
		SET status = $2,
		    mpesa_receipt_number = COALESCE($3::text, mpesa_receipt_number),
		    result_code = COALESCE($4::integer, result_code),
		    result_description = COALESCE($5::text, result_description),
		    amount = COALESCE($6::numeric, amount),
		    phone_number = COALESCE($7::text, phone_number),
		    updated_at = NOW()
		WHERE transaction_request_id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query,
		update.TransactionRequestID,
		update.Status,
		update.Receipt,
		update.ResultCode,
		update.ResultDescription,
		update.Amount,
		update.PhoneNumber,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}
