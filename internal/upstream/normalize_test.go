package upstream

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poslane/poslane/internal/catalog"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func decodeProductPage(t *testing.T, body string) Page[catalog.Product] {
	t.Helper()
	return decodePage(testLogger(), []byte(body), catalog.ProductFromRaw, func(p catalog.Product) bool { return p.Deleted })
}

func TestNormalizeDataEnvelope(t *testing.T) {
	page := decodeProductPage(t, `{"data":[{"id":"p-1"},{"id":"p-2"}],"next_cursor":"abc","has_more":true}`)
	require.Len(t, page.Items, 2)
	require.Equal(t, "abc", page.NextCursor)
	require.True(t, page.HasMore)
}

func TestNormalizeNullData(t *testing.T) {
	page := decodeProductPage(t, `{"data":null}`)
	require.Empty(t, page.Items)
	require.False(t, page.HasMore)
	require.Equal(t, "", page.NextCursor)
}

func TestNormalizeWrongTypeData(t *testing.T) {
	page := decodeProductPage(t, `{"data":"oops"}`)
	require.Empty(t, page.Items)
	require.False(t, page.HasMore)
}

func TestNormalizeBareArray(t *testing.T) {
	page := decodeProductPage(t, `[{"id":"p-1"},{"id":"p-2"},{"id":"p-3"}]`)
	require.Len(t, page.Items, 3)
	require.Equal(t, "", page.NextCursor)
	require.False(t, page.HasMore)
}

func TestNormalizeLegacyEnvelopes(t *testing.T) {
	page := decodeProductPage(t, `{"products":[{"id":"p-1"}]}`)
	require.Len(t, page.Items, 1)

	page = decodeProductPage(t, `{"items":[{"id":"p-2"}]}`)
	require.Len(t, page.Items, 1)
	require.Equal(t, "p-2", page.Items[0].ID)
}

func TestNormalizeDataKeyWinsOverLegacyKeys(t *testing.T) {
	page := decodeProductPage(t, `{"data":[{"id":"new"}],"products":[{"id":"old"}]}`)
	require.Len(t, page.Items, 1)
	require.Equal(t, "new", page.Items[0].ID)
}

func TestNormalizeSkipsNonObjectEntries(t *testing.T) {
	page := decodeProductPage(t, `{"data":[{"id":"p-1"},42,"junk",{"id":"p-2"}]}`)
	require.Len(t, page.Items, 2)
	require.Equal(t, "p-1", page.Items[0].ID)
	require.Equal(t, "p-2", page.Items[1].ID)
}

func TestNormalizeFiltersSoftDeletedAfterPageBoundary(t *testing.T) {
	page := decodeProductPage(t, `{"data":[{"id":"p-1"},{"id":"p-2","deleted":true}],"next_cursor":"xyz","has_more":true}`)
	require.Len(t, page.Items, 1)
	require.Equal(t, "p-1", page.Items[0].ID)
	// Cursor metadata still reflects the raw page, not the post-filter count.
	require.Equal(t, "xyz", page.NextCursor)
	require.True(t, page.HasMore)
}

func TestNormalizeGarbageBody(t *testing.T) {
	page := decodeProductPage(t, `not json at all`)
	require.Empty(t, page.Items)
	require.False(t, page.HasMore)

	page = decodeProductPage(t, `{"unrelated":true}`)
	require.Empty(t, page.Items)
}
