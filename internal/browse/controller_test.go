package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/upstream"
)

// fakeBackend serves deterministic cursor pages: cursor "" is page 1,
// cursor "c2" page 2, and so on. It records every request it sees.
type fakeBackend struct {
	mu       sync.Mutex
	pages    int
	requests []upstream.ListRequest
	failNext error
}

func newFakeBackend(pages int) *fakeBackend {
	return &fakeBackend{pages: pages}
}

func (b *fakeBackend) fetch(ctx context.Context, req upstream.ListRequest) (upstream.Page[catalog.Product], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return upstream.Page[catalog.Product]{}, err
	}

	number := 1
	if req.Cursor != "" {
		if _, err := fmt.Sscanf(req.Cursor, "c%d", &number); err != nil {
			return upstream.Page[catalog.Product]{}, fmt.Errorf("unknown cursor %q", req.Cursor)
		}
	}
	page := upstream.Page[catalog.Product]{
		Items:    []catalog.Product{{ID: fmt.Sprintf("p-%d", number)}},
		RawCount: 1,
	}
	if number < b.pages {
		page.NextCursor = fmt.Sprintf("c%d", number+1)
		page.HasMore = true
	}
	return page, nil
}

func (b *fakeBackend) lastRequest() upstream.ListRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func TestNextThenPreviousReturnsToFirstPage(t *testing.T) {
	backend := newFakeBackend(5)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	const steps = 3
	for i := 0; i < steps; i++ {
		require.NoError(t, ctrl.Next(ctx))
	}
	require.Equal(t, 4, ctrl.Snapshot().PageNumber)
	require.Equal(t, steps, ctrl.CursorDepth())

	for i := 0; i < steps; i++ {
		require.NoError(t, ctrl.Previous(ctx))
	}

	snap := ctrl.Snapshot()
	require.Equal(t, 1, snap.PageNumber)
	require.Zero(t, ctrl.CursorDepth())
	require.Equal(t, "p-1", snap.Items[0].ID)
	// The final request must be the original no-cursor request.
	require.Equal(t, "", backend.lastRequest().Cursor)
}

func TestCursorStackTracksPageNumber(t *testing.T) {
	backend := newFakeBackend(4)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.NoError(t, ctrl.Next(ctx))
	require.NoError(t, ctrl.Next(ctx))

	snap := ctrl.Snapshot()
	require.Equal(t, 3, snap.PageNumber)
	require.Equal(t, snap.PageNumber-1, ctrl.CursorDepth())
	require.Equal(t, "p-3", snap.Items[0].ID)

	require.NoError(t, ctrl.Previous(ctx))
	require.Equal(t, "c2", backend.lastRequest().Cursor)
	require.Equal(t, "p-2", ctrl.Snapshot().Items[0].ID)
}

func TestNextInvalidWithoutMoreData(t *testing.T) {
	backend := newFakeBackend(1)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.ErrorIs(t, ctrl.Next(ctx), ErrNoNextPage)
	require.ErrorIs(t, ctrl.Previous(ctx), ErrNoPreviousPage)
}

func TestPageSizeChangeResetsPagination(t *testing.T) {
	backend := newFakeBackend(5)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.NoError(t, ctrl.Next(ctx))
	require.NoError(t, ctrl.SetPageSize(ctx, 25))

	snap := ctrl.Snapshot()
	require.Equal(t, 1, snap.PageNumber)
	require.Equal(t, 25, snap.PerPage)
	require.Zero(t, ctrl.CursorDepth())
	require.Equal(t, "", backend.lastRequest().Cursor)
}

func TestUnsupportedPageSizeReportedAsFallback(t *testing.T) {
	backend := newFakeBackend(1)
	ctrl := New(backend.fetch, 999, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.Equal(t, upstream.DefaultPerPage, ctrl.Snapshot().PerPage)
}

func TestErrorStateAndRetrySameCursor(t *testing.T) {
	backend := newFakeBackend(3)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	backend.failNext = errors.New("backend down")
	require.Error(t, ctrl.Next(ctx))

	snap := ctrl.Snapshot()
	require.Equal(t, StateErrored, snap.State)
	require.Equal(t, "backend down", snap.Err)
	require.Equal(t, 2, snap.PageNumber)

	require.NoError(t, ctrl.Retry(ctx))
	snap = ctrl.Snapshot()
	require.Equal(t, StateLoaded, snap.State)
	require.Equal(t, "p-2", snap.Items[0].ID)
	require.Equal(t, "c2", backend.lastRequest().Cursor)
}

func TestFilterChangeIsPassedThroughAndResets(t *testing.T) {
	backend := newFakeBackend(3)
	ctrl := New(backend.fetch, 15, slog.Default())
	ctx := context.Background()

	filter := url.Values{}
	filter.Set("category_id", "c-7")
	require.NoError(t, ctrl.LoadFirst(ctx, filter))
	require.Equal(t, "c-7", backend.lastRequest().Filter.Get("category_id"))

	require.NoError(t, ctrl.Next(ctx))
	require.Equal(t, "c-7", backend.lastRequest().Filter.Get("category_id"))

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.Equal(t, 1, ctrl.Snapshot().PageNumber)
	require.Zero(t, ctrl.CursorDepth())
}

func TestLoadMoreAppendsAndRederivesHasMore(t *testing.T) {
	pages := map[string]upstream.Page[catalog.Product]{
		"": {
			Items:      []catalog.Product{{ID: "p-1"}, {ID: "p-2"}},
			RawCount:   2,
			NextCursor: "cur-2",
			HasMore:    true,
		},
		// Short page: fewer raw items than requested means no more data.
		"cur-2": {
			Items:    []catalog.Product{{ID: "p-3"}},
			RawCount: 1,
		},
	}
	fetch := func(ctx context.Context, req upstream.ListRequest) (upstream.Page[catalog.Product], error) {
		return pages[req.Cursor], nil
	}
	ctrl := New(fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	require.NoError(t, ctrl.LoadMore(ctx))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 3)
	require.Equal(t, []string{"p-1", "p-2", "p-3"}, []string{snap.Items[0].ID, snap.Items[1].ID, snap.Items[2].ID})
	require.False(t, snap.HasMore)
}

func TestNavigationRejectedWhileLoading(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := newFakeBackend(5)
	var calls int32
	fetch := func(ctx context.Context, req upstream.ListRequest) (upstream.Page[catalog.Product], error) {
		// calls 1 is LoadFirst; hold the first Next open.
		if atomic.AddInt32(&calls, 1) == 2 {
			close(started)
			<-release
		}
		return backend.fetch(ctx, req)
	}
	ctrl := New(fetch, 15, slog.Default())
	ctx := context.Background()

	require.NoError(t, ctrl.LoadFirst(ctx, nil))

	done := make(chan error, 1)
	go func() { done <- ctrl.Next(ctx) }()
	<-started

	// Overlapping navigation checks its guards against pre-fetch state, so
	// it must be rejected outright or the cursor stack double-pushes.
	require.ErrorIs(t, ctrl.Next(ctx), ErrBusy)
	require.ErrorIs(t, ctrl.Previous(ctx), ErrBusy)
	require.ErrorIs(t, ctrl.LoadMore(ctx), ErrBusy)
	require.ErrorIs(t, ctrl.Retry(ctx), ErrBusy)

	close(release)
	require.NoError(t, <-done)

	snap := ctrl.Snapshot()
	require.Equal(t, 2, snap.PageNumber)
	require.Equal(t, 1, ctrl.CursorDepth())
	require.Equal(t, "p-2", snap.Items[0].ID)

	// The stack still unwinds cleanly afterwards.
	require.NoError(t, ctrl.Previous(ctx))
	require.Equal(t, 1, ctrl.Snapshot().PageNumber)
	require.Zero(t, ctrl.CursorDepth())
}

func TestStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	fetch := func(ctx context.Context, req upstream.ListRequest) (upstream.Page[catalog.Product], error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return upstream.Page[catalog.Product]{Items: []catalog.Product{{ID: "stale"}}, RawCount: 1}, nil
		}
		return upstream.Page[catalog.Product]{Items: []catalog.Product{{ID: "fresh"}}, RawCount: 1}, nil
	}
	ctrl := New(fetch, 15, slog.Default())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.LoadFirst(ctx, nil)
	}()
	<-started

	// A filter reload dispatched while the first is in flight must win.
	require.NoError(t, ctrl.LoadFirst(ctx, nil))
	close(release)
	require.ErrorIs(t, <-done, ErrSuperseded)

	snap := ctrl.Snapshot()
	require.Equal(t, "fresh", snap.Items[0].ID)
	require.Equal(t, StateLoaded, snap.State)
}
