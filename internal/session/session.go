package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"heladeria-storefront/internal/cart"
	"heladeria-storefront/internal/checkout"
	"heladeria-storefront/internal/identity"
)

// Session ties a browser cookie to a backend bearer token plus the per-visit
// runtime state built around it. The token outlives process restarts when a
// durable store is configured; the cart and resolver never do. A revived
// session starts with an empty cart and re-resolves identity, matching how
// the storefront treats a fresh page load.
//
// One session can serve concurrent requests (a second tab, a double-click
// posting twice). The cart, resolver and workflow each carry their own lock,
// and EnsureRuntime makes the lazy construction of the latter two race-free.
type Session struct {
	ID        string
	RawToken  string
	Username  string
	ExpiresAt time.Time

	Cart     *cart.Cart
	Resolver *identity.Resolver
	Workflow *checkout.Workflow

	runtimeOnce sync.Once
}

// EnsureRuntime runs init at most once over the session's lifetime.
// Concurrent callers block until init has finished, so both observe the
// resolver and workflow it installs.
func (s *Session) EnsureRuntime(init func()) {
	s.runtimeOnce.Do(init)
}

func newSession(id, rawToken, username string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		RawToken:  rawToken,
		Username:  username,
		ExpiresAt: expiresAt,
		Cart:      cart.New(),
	}
}

// Store owns session records. Get never returns an expired session.
type Store interface {
	Create(ctx context.Context, rawToken, username string, expiresAt time.Time) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func randomID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
