// Package model defines the core domain types for subscription detection.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single ledger entry from any source.
// Amounts are signed: negative values are charges (debits), positive
// values are deposits or refunds.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string // Raw transaction description as exported by the bank
	AccountID   string
	Hash        string
	Type        string // Source transaction type (e.g., DEBIT, PAYMENT, POS)
	Amount      float64
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsCharge reports whether the transaction debits the account.
// Only charges participate in subscription detection.
func (t *Transaction) IsCharge() bool {
	return t.Amount < 0
}

// IsMalformed reports whether the transaction is missing the fields
// detection depends on. Malformed entries are skipped, not fatal.
func (t *Transaction) IsMalformed() bool {
	return t.Description == "" || t.Date.IsZero()
}
