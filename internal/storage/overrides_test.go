package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHideMerchant_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.HideMerchant(ctx, "NETFLIX.COM", first))

	// Hiding again leaves exactly one entry; the later write wins.
	second := first.Add(time.Hour)
	require.NoError(t, store.HideMerchant(ctx, "NETFLIX.COM", second))

	entries, err := store.ListOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NETFLIX.COM", entries[0].MerchantKey)
	assert.True(t, entries[0].HiddenAt.Equal(second))
}

func TestHideMerchant_NoMatchingTransactionsRequired(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Overrides persist independently of the ledger.
	require.NoError(t, store.HideMerchant(ctx, "DEFUNCT SERVICE", time.Now()))

	hidden, err := store.GetHiddenMerchants(ctx)
	require.NoError(t, err)
	assert.Contains(t, hidden, "DEFUNCT SERVICE")
}

func TestUnhideMerchant_NeverHiddenIsNoOp(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UnhideMerchant(ctx, "NEVER HIDDEN"))

	hidden, err := store.GetHiddenMerchants(ctx)
	require.NoError(t, err)
	assert.Empty(t, hidden)
}

func TestHideUnhideRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.HideMerchant(ctx, "SPOTIFY USA", time.Now()))
	require.NoError(t, store.HideMerchant(ctx, "HULU LLC", time.Now()))

	hidden, err := store.GetHiddenMerchants(ctx)
	require.NoError(t, err)
	assert.Len(t, hidden, 2)

	require.NoError(t, store.UnhideMerchant(ctx, "SPOTIFY USA"))

	hidden, err = store.GetHiddenMerchants(ctx)
	require.NoError(t, err)
	assert.Len(t, hidden, 1)
	assert.Contains(t, hidden, "HULU LLC")
}

func TestHideMerchant_ZeroTimeDefaultsToNow(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.HideMerchant(ctx, "GYM", time.Time{}))

	hidden, err := store.GetHiddenMerchants(ctx)
	require.NoError(t, err)
	require.Contains(t, hidden, "GYM")
	assert.True(t, hidden["GYM"].After(before))
}

func TestHideMerchant_EmptyKeyRejected(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.HideMerchant(ctx, "  ", time.Now()))
	assert.Error(t, store.UnhideMerchant(ctx, ""))
}
