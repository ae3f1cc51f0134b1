package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetailedStockStatus(t *testing.T) {
	require.Equal(t, StatusOutOfStock, DetailedStockStatus(0))
	require.Equal(t, StatusLowStock, DetailedStockStatus(5))
	require.Equal(t, StatusMediumStock, DetailedStockStatus(20))
	require.Equal(t, StatusGoodStock, DetailedStockStatus(100))
}

func TestCoarseStockStatusStaysTwoTier(t *testing.T) {
	require.Equal(t, StatusLowStock, CoarseStockStatus(0))
	require.Equal(t, StatusLowStock, CoarseStockStatus(9))
	require.Equal(t, StatusActive, CoarseStockStatus(20))
	require.Equal(t, StatusActive, CoarseStockStatus(100))
}

func TestExpiryStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.Equal(t, ExpiryExpired, ExpiryStatus(now.AddDate(0, 0, -1), now))
	require.Equal(t, ExpirySoon, ExpiryStatus(now.AddDate(0, 0, 14), now))
	require.Equal(t, ExpiryOK, ExpiryStatus(now.AddDate(0, 2, 0), now))
	require.Equal(t, ExpiryOK, ExpiryStatus(time.Time{}, now))
}
