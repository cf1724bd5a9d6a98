package identity

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/token"
)

// CustomerRef identifies the acting customer for order attribution. It is a
// sealed two-case union: order construction must switch over both cases
// instead of inspecting the runtime type of a loose identifier.
type CustomerRef interface {
	isCustomerRef()
}

// ByID is the preferred reference: the backend's numeric customer id.
type ByID int64

func (ByID) isCustomerRef() {}

// ByEmail is the degraded reference used when no numeric id can be obtained.
// Orders attributed by email rely on the backend resolving the account.
type ByEmail string

func (ByEmail) isCustomerRef() {}

type customerLookup interface {
	CustomerByEmail(ctx context.Context, bearer, email string) (*domain.Customer, error)
}

// Resolver derives a CustomerRef from a session token. The token payload
// shape is inconsistent across backend deployments, so resolution walks a
// fallback chain: embedded numeric claim, then subject email looked up
// against the backend, then the email itself. The result is cached for the
// session; it is never persisted.
type Resolver struct {
	lookup customerLookup
	logger *logrus.Logger

	mu     sync.Mutex
	cached CustomerRef
}

func NewResolver(lookup customerLookup, logger *logrus.Logger) *Resolver {
	return &Resolver{lookup: lookup, logger: logger}
}

// Resolve returns the cached reference or walks the fallback chain. It never
// invents an identifier: an unusable token fails with ErrNotAuthenticated or
// ErrIdentityResolution and the caller prompts a re-login.
func (r *Resolver) Resolve(ctx context.Context, tok *token.Token) (CustomerRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return r.cached, nil
	}
	if tok == nil || tok.Expired(time.Now()) {
		return nil, domain.ErrNotAuthenticated
	}

	if id, ok := tok.NumericID(); ok {
		r.cached = ByID(id)
		return r.cached, nil
	}

	email, ok := tok.Email()
	if !ok {
		return nil, domain.ErrIdentityResolution
	}

	customer, err := r.lookup.CustomerByEmail(ctx, tok.Raw, email)
	if err != nil || customer == nil || customer.ID == 0 {
		// Lookup endpoint missing or unhealthy: fall back to the email
		// itself. The order payload then carries clienteEmail instead of
		// clienteId.
		r.logger.WithField("email", email).WithError(err).
			Warn("customer lookup failed, using email as identifier")
		r.cached = ByEmail(email)
		return r.cached, nil
	}

	r.cached = ByID(customer.ID)
	return r.cached, nil
}

// Reset drops the cached reference. Called when the session's token changes.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
}
