package upstream

import (
	"encoding/json"
	"log/slog"

	"github.com/poslane/poslane/internal/catalog"
)

// shapeMatcher inspects a decoded response body and returns the raw item
// array when the shape applies. Matching on a present-but-broken payload
// (null, wrong type) still succeeds with an empty array: shape defects in a
// 2xx response are normalized away, never surfaced as errors.
type shapeMatcher func(body any) ([]any, bool)

// shapeMatchers is tried in order and the first match wins. The order
// encodes real backend history ({data} envelope, then a bare array, then the
// legacy {products} and {items} envelopes) and must not be rearranged.
var shapeMatchers = []shapeMatcher{
	matchKey("data"),
	matchBareArray,
	matchKey("products"),
	matchKey("items"),
}

func matchKey(key string) shapeMatcher {
	return func(body any) ([]any, bool) {
		object, ok := body.(map[string]any)
		if !ok {
			return nil, false
		}
		value, present := object[key]
		if !present {
			return nil, false
		}
		if arr, ok := value.([]any); ok {
			return arr, true
		}
		return []any{}, true
	}
}

func matchBareArray(body any) ([]any, bool) {
	arr, ok := body.([]any)
	return arr, ok
}

// normalizeList decodes a 2xx list body into raw items plus cursor metadata.
// Unrecognized shapes become an empty page with a logged warning.
func normalizeList(logger *slog.Logger, body []byte) (items []any, nextCursor string, hasMore bool) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		logger.Warn("unparseable list response, treating as empty", slog.Any("error", err))
		return nil, "", false
	}

	if object, ok := decoded.(map[string]any); ok {
		raw := catalog.Raw(object)
		nextCursor = raw.Str("next_cursor")
		hasMore = raw.Bool("has_more")
	}

	for _, match := range shapeMatchers {
		if arr, ok := match(decoded); ok {
			return arr, nextCursor, hasMore
		}
	}

	logger.Warn("unrecognized list response shape, treating as empty")
	return nil, "", false
}

// decodePage normalizes a list body into typed entities. Non-object entries
// are skipped with a warning; one bad item never aborts the page.
// Soft-deleted entities are filtered after normalization, so NextCursor and
// HasMore still describe the raw page boundary.
func decodePage[T any](logger *slog.Logger, body []byte, from func(catalog.Raw) T, deleted func(T) bool) Page[T] {
	rawItems, nextCursor, hasMore := normalizeList(logger, body)
	page := Page[T]{
		Items:      make([]T, 0, len(rawItems)),
		NextCursor: nextCursor,
		HasMore:    hasMore,
		RawCount:   len(rawItems),
	}
	for i, item := range rawItems {
		object, ok := item.(map[string]any)
		if !ok {
			logger.Warn("skipping non-object list entry", slog.Int("index", i))
			continue
		}
		entity := from(catalog.Raw(object))
		if deleted != nil && deleted(entity) {
			continue
		}
		page.Items = append(page.Items, entity)
	}
	return page
}

// decodeEntity decodes a single-entity body, tolerating a {data: {...}}
// envelope and an empty body.
func decodeEntity[T any](logger *slog.Logger, body []byte, from func(catalog.Raw) T) T {
	var zero T
	if len(body) == 0 {
		return zero
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		logger.Warn("unparseable entity response", slog.Any("error", err))
		return zero
	}
	object, ok := decoded.(map[string]any)
	if !ok {
		return zero
	}
	if nested, ok := object["data"].(map[string]any); ok {
		object = nested
	}
	return from(catalog.Raw(object))
}
