// Package service defines the interfaces between the detection
// pipeline and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// TransactionFilter defines filtering options for ledger queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TransactionSource provides read access to the ledger for detection.
type TransactionSource interface {
	// ListCharges returns all debit transactions (negative amounts),
	// ordered ascending by date.
	ListCharges(ctx context.Context) ([]model.Transaction, error)
}

// OverrideStore persists the user's hide/unhide decisions keyed by
// merchant identity.
type OverrideStore interface {
	// HideMerchant marks a merchant hidden. Idempotent upsert; the key
	// need not correspond to any current transaction.
	HideMerchant(ctx context.Context, merchantKey string, hiddenAt time.Time) error
	// UnhideMerchant clears a hide override. A no-op for keys that were
	// never hidden.
	UnhideMerchant(ctx context.Context, merchantKey string) error
	// GetHiddenMerchants returns the hidden merchant keys with the time
	// each was hidden.
	GetHiddenMerchants(ctx context.Context) (map[string]time.Time, error)
}

// Notifier broadcasts data-change events so other consumers can
// refresh after an override write or a ledger import.
type Notifier interface {
	DataChanged(ctx context.Context, reason string)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	TransactionSource
	OverrideStore

	// Ledger operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionCount(ctx context.Context) (int, error)

	// Override listing
	ListOverrides(ctx context.Context) ([]model.OverrideEntry, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
