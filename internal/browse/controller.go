// Package browse implements the page-level list controller driving cursor
// pagination over a forward-only cursor API. The backend only hands out next
// cursors, so backward navigation replays cursors remembered on a stack.
package browse

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"

	"github.com/poslane/poslane/internal/upstream"
)

// State is the controller's view state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateErrored State = "errored"
)

// Navigation errors.
var (
	ErrNoNextPage     = errors.New("browse: no next page available")
	ErrNoPreviousPage = errors.New("browse: already on the first page")
	// ErrBusy rejects navigation dispatched while a load is still in
	// flight. The guards below check pre-fetch state, so letting a second
	// navigation through would push the stack and bump the page number
	// against a page that is about to be replaced.
	ErrBusy = errors.New("browse: a page load is already in flight")
	// ErrSuperseded indicates a response arrived after a newer request was
	// dispatched and was discarded to keep the cursor stack consistent.
	ErrSuperseded = errors.New("browse: response superseded by a newer request")
)

// Fetcher loads one page from the backing resource service.
type Fetcher[T any] func(ctx context.Context, req upstream.ListRequest) (upstream.Page[T], error)

// Snapshot is an immutable view of the controller for rendering.
type Snapshot[T any] struct {
	Items      []T
	PageNumber int
	PerPage    int
	HasMore    bool
	State      State
	Err        string
}

// Controller owns the current page, the cursor stack, and loading/error
// state for one list view. It dies with the view that created it.
type Controller[T any] struct {
	mu     sync.Mutex
	fetch  Fetcher[T]
	logger *slog.Logger

	perPage    int
	filter     url.Values
	state      State
	errMsg     string
	items      []T
	nextCursor string
	hasMore    bool
	pageNumber int

	// stack holds the cursor used to reach each prior page, oldest first;
	// the empty string stands for the no-cursor first page. Invariant:
	// len(stack) == pageNumber-1 past the first page.
	stack []string
	// current is the cursor used for the page being shown (or attempted);
	// Retry re-issues it unchanged.
	current string

	// seq guards against out-of-order completions: each dispatch captures
	// the counter and stale responses are discarded.
	seq uint64
}

// New constructs a controller around a fetcher. The page size is coerced to
// a backend-accepted value immediately, so the controller always reports the
// size actually requested.
func New[T any](fetch Fetcher[T], perPage int, logger *slog.Logger) *Controller[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller[T]{
		fetch:      fetch,
		logger:     logger,
		perPage:    upstream.ClampPerPage(perPage, logger),
		state:      StateIdle,
		pageNumber: 1,
	}
}

// LoadFirst resets pagination entirely and loads the first page. Called on
// mount and on every filter change; cursor history never survives either.
func (c *Controller[T]) LoadFirst(ctx context.Context, filter url.Values) error {
	c.mu.Lock()
	c.filter = cloneValues(filter)
	c.stack = nil
	c.pageNumber = 1
	c.mu.Unlock()
	return c.load(ctx, "", false)
}

// UpdatePageSize stores a new (coerced) page size without fetching. The next
// load uses it; callers that also change filters combine this with LoadFirst
// to avoid a double fetch.
func (c *Controller[T]) UpdatePageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perPage = upstream.ClampPerPage(size, c.logger)
}

// SetPageSize switches to a new page size and resets to the first page.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) error {
	c.UpdatePageSize(size)
	c.mu.Lock()
	c.stack = nil
	c.pageNumber = 1
	c.mu.Unlock()
	return c.load(ctx, "", false)
}

// Next advances one page. Valid only when the current page reported more
// data and a cursor to fetch it with.
func (c *Controller[T]) Next(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.hasMore || c.nextCursor == "" {
		c.mu.Unlock()
		return ErrNoNextPage
	}
	cursor := c.nextCursor
	c.stack = append(c.stack, c.current)
	c.pageNumber++
	c.mu.Unlock()
	return c.load(ctx, cursor, false)
}

// Previous pops the cursor stack and reloads the prior page. Popping the
// first-page sentinel issues a no-cursor request.
func (c *Controller[T]) Previous(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.pageNumber <= 1 || len(c.stack) == 0 {
		c.mu.Unlock()
		return ErrNoPreviousPage
	}
	cursor := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.pageNumber--
	c.mu.Unlock()
	return c.load(ctx, cursor, false)
}

// Retry re-issues the last request with the same cursor.
func (c *Controller[T]) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	cursor := c.current
	c.mu.Unlock()
	return c.load(ctx, cursor, false)
}

// LoadMore appends the next page to the current items instead of replacing
// them, as used by modal/grid pickers. HasMore is then re-derived from
// whether a full page came back; the backend gives no true total on this
// path, so an exactly-full final page is misreported as "more available".
// Known limitation, kept as observed.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.hasMore || c.nextCursor == "" {
		c.mu.Unlock()
		return ErrNoNextPage
	}
	cursor := c.nextCursor
	c.mu.Unlock()
	return c.load(ctx, cursor, true)
}

// Snapshot returns the current view state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:      items,
		PageNumber: c.pageNumber,
		PerPage:    c.perPage,
		HasMore:    c.hasMore,
		State:      c.state,
		Err:        c.errMsg,
	}
}

// CursorDepth reports how many prior-page cursors are stacked.
func (c *Controller[T]) CursorDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack)
}

func (c *Controller[T]) load(ctx context.Context, cursor string, appendItems bool) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.errMsg = ""
	c.current = cursor
	req := upstream.ListRequest{
		PerPage: c.perPage,
		Cursor:  cursor,
		Filter:  cloneValues(c.filter),
	}
	fetch := c.fetch
	c.mu.Unlock()

	page, err := fetch(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Warn("discarding stale page response", slog.Uint64("seq", seq), slog.Uint64("latest", c.seq))
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateErrored
		c.errMsg = err.Error()
		return err
	}
	if appendItems {
		c.items = append(c.items, page.Items...)
		c.hasMore = page.RawCount == req.PerPage
	} else {
		c.items = page.Items
		c.hasMore = page.HasMore
	}
	c.nextCursor = page.NextCursor
	c.state = StateLoaded
	return nil
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
