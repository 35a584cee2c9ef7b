package model

import "time"

// OverrideEntry records a user's decision to hide a merchant from the
// default subscription view. Its presence means "hidden"; deleting the
// row restores visibility. Overrides overlay detection output and never
// alter it.
type OverrideEntry struct {
	HiddenAt    time.Time
	MerchantKey string
}
