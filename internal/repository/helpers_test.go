package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/zenka/payments/internal/db"
)

func setupTransactionRepoTest(t *testing.T) (TransactionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewTransactionRepository(db.NewTestDB(mockDB))

	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		mockDB.Close()
	}

	return repo, mock, cleanup
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
