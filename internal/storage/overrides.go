package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/subwatch/internal/model"
)

// HideMerchant marks a merchant hidden. The upsert is idempotent:
// hiding an already-hidden merchant just refreshes hidden_at
// (last-write-wins), and the key need not match any current
// transaction.
func (s *SQLiteStorage) HideMerchant(ctx context.Context, merchantKey string, hiddenAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return err
	}
	if hiddenAt.IsZero() {
		hiddenAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overrides (merchant_key, hidden_at)
		VALUES (?, ?)
		ON CONFLICT(merchant_key) DO UPDATE SET
			hidden_at = excluded.hidden_at
	`, merchantKey, hiddenAt)
	if err != nil {
		return fmt.Errorf("failed to hide merchant %q: %w", merchantKey, err)
	}
	return nil
}

// UnhideMerchant removes a hide override. Deleting a key that was
// never hidden is a no-op, not an error.
func (s *SQLiteStorage) UnhideMerchant(ctx context.Context, merchantKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM overrides WHERE merchant_key = ?
	`, merchantKey)
	if err != nil {
		return fmt.Errorf("failed to unhide merchant %q: %w", merchantKey, err)
	}
	return nil
}

// GetHiddenMerchants returns the hidden merchant keys with the time
// each was hidden.
func (s *SQLiteStorage) GetHiddenMerchants(ctx context.Context) (map[string]time.Time, error) {
	entries, err := s.ListOverrides(ctx)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		hidden[e.MerchantKey] = e.HiddenAt
	}
	return hidden, nil
}

// ListOverrides returns all override entries ordered by merchant key.
func (s *SQLiteStorage) ListOverrides(ctx context.Context) ([]model.OverrideEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant_key, hidden_at
		FROM overrides
		ORDER BY merchant_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.OverrideEntry
	for rows.Next() {
		var e model.OverrideEntry
		if err := rows.Scan(&e.MerchantKey, &e.HiddenAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overrides: %w", err)
	}
	return entries, nil
}
