package upstream

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPerPage is the fallback page size when a request asks for a size
// the backend does not accept.
const DefaultPerPage = 15

// allowedPerPage is the discrete set of page sizes the backend accepts.
var allowedPerPage = map[int]bool{15: true, 25: true, 50: true}

// ListRequest is a uniform pagination request. A blank cursor means the
// first page.
type ListRequest struct {
	PerPage int
	Cursor  string
	Filter  url.Values
}

// Page is a normalized page of entities. NextCursor and HasMore reflect the
// raw page boundary reported by the backend, not the post-filter item count.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasMore    bool
	// RawCount is the item count before soft-delete filtering; load-more
	// style callers compare it against the requested size.
	RawCount int
}

// ClampPerPage coerces size to one of the backend's accepted values. This
// fallback is a compatibility shim: the backend silently misbehaves on other
// sizes, so out-of-set values become DefaultPerPage with a warning.
func ClampPerPage(size int, logger *slog.Logger) int {
	if allowedPerPage[size] {
		return size
	}
	if logger != nil {
		logger.Warn("unsupported page size, falling back", slog.Int("requested", size), slog.Int("used", DefaultPerPage))
	}
	return DefaultPerPage
}

// query renders the request as backend query parameters. A blank or
// whitespace cursor is omitted entirely; the backend distinguishes "no
// cursor" from an empty cursor parameter.
func (r ListRequest) query(logger *slog.Logger) url.Values {
	q := url.Values{}
	for key, values := range r.Filter {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("per_page", strconv.Itoa(ClampPerPage(r.PerPage, logger)))
	if cursor := strings.TrimSpace(r.Cursor); cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}
