// Package console exposes the admin console's HTTP surface: paginated list
// endpoints driven by per-session list controllers, create/delete proxies,
// the dashboard, and checkout.
package console

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
)

const sessionCookie = "poslane_session"

// Session holds the list controllers for one browser session. Controllers
// are created lazily and die with the session.
type Session struct {
	mu sync.Mutex

	products   *browse.Controller[catalog.Product]
	stocks     *browse.Controller[catalog.StockBatch]
	brands     *browse.Controller[catalog.Brand]
	categories *browse.Controller[catalog.Category]
	receipts   *browse.Controller[catalog.GoodsReceipt]
	suppliers  *browse.Controller[catalog.Supplier]
	sales      *browse.Controller[catalog.Sale]
	returns    *browse.Controller[catalog.Return]
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry tracks sessions by cookie with idle expiry.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry constructs a Registry. Sessions idle longer than ttl are
// dropped on the next acquire.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Registry{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Acquire resolves the request's session, creating one (and setting the
// cookie) when absent or expired.
func (reg *Registry) Acquire(w http.ResponseWriter, r *http.Request) *Session {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.pruneLocked()

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if entry, ok := reg.sessions[cookie.Value]; ok {
			entry.lastSeen = reg.now()
			return entry.session
		}
	}

	id := uuid.NewString()
	entry := &sessionEntry{session: &Session{}, lastSeen: reg.now()}
	reg.sessions[id] = entry
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return entry.session
}

func (reg *Registry) pruneLocked() {
	cutoff := reg.now().Add(-reg.ttl)
	for id, entry := range reg.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(reg.sessions, id)
		}
	}
}
