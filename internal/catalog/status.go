package catalog

import "time"

// Stock status labels shown on list pages.
const (
	StatusOutOfStock  = "Out of Stock"
	StatusLowStock    = "Low Stock"
	StatusMediumStock = "Medium Stock"
	StatusGoodStock   = "Good Stock"
	StatusActive      = "Active"
)

// Expiry labels derived from a batch expiry date.
const (
	ExpiryExpired = "Expired"
	ExpirySoon    = "Expiring Soon"
	ExpiryOK      = "OK"
)

// CoarseStockStatus is the two-tier classifier used on product list pages.
// It is a distinct business rule from DetailedStockStatus and the two must
// not be merged: product rows never show "Out of Stock" or "Medium Stock".
func CoarseStockStatus(quantity float64) string {
	if quantity < 10 {
		return StatusLowStock
	}
	return StatusActive
}

// DetailedStockStatus is the four-tier classifier used on stock batch pages.
func DetailedStockStatus(quantity float64) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < 10:
		return StatusLowStock
	case quantity < 50:
		return StatusMediumStock
	default:
		return StatusGoodStock
	}
}

// ExpiryStatus classifies a batch expiry date relative to now. A zero expiry
// date means the batch does not expire and is always OK.
func ExpiryStatus(expiry, now time.Time) string {
	if expiry.IsZero() {
		return ExpiryOK
	}
	if expiry.Before(now) {
		return ExpiryExpired
	}
	if expiry.Sub(now) <= 30*24*time.Hour {
		return ExpirySoon
	}
	return ExpiryOK
}
