package checkout

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heladeria-storefront/internal/cart"
	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/identity"
	"heladeria-storefront/internal/token"
)

type stubCreator struct {
	order *domain.Order
	err   error
	keys  []string
	hook  func(ctx context.Context)
}

func (s *stubCreator) CreateOrder(ctx context.Context, _ string, _ domain.OrderRequest, key string) (*domain.Order, error) {
	s.keys = append(s.keys, key)
	if s.hook != nil {
		s.hook(ctx)
	}
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.order, nil
}

type noLookup struct{}

func (noLookup) CustomerByEmail(context.Context, string, string) (*domain.Customer, error) {
	return nil, errors.New("unexpected lookup")
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func customerToken(t *testing.T) *token.Token {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]interface{}{
		"sub":    "ana@example.com",
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	enc := base64.RawURLEncoding
	raw := enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
	tok, err := token.Parse(raw)
	require.NoError(t, err)
	return tok
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.Add(domain.Product{ID: 1, Name: "Helado de Vainilla", Price: 3.50})
	c.Add(domain.Product{ID: 1, Name: "Helado de Vainilla", Price: 3.50})
	return c
}

func TestSubmitClearsCartOnSuccess(t *testing.T) {
	creator := &stubCreator{order: &domain.Order{ID: 9, Total: 7.00, Status: domain.StatusPending}}
	w := NewWorkflow(creator, time.Second, quietLogger())
	c := filledCart()

	order, err := w.Submit(context.Background(), customerToken(t), c, identity.NewResolver(noLookup{}, quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, int64(9), order.ID)
	assert.True(t, c.Empty())
	assert.Equal(t, StateSucceeded, w.State())
}

func TestSubmitKeepsCartOnFailure(t *testing.T) {
	creator := &stubCreator{err: errors.New("backend exploded")}
	w := NewWorkflow(creator, time.Second, quietLogger())
	c := filledCart()

	_, err := w.Submit(context.Background(), customerToken(t), c, identity.NewResolver(noLookup{}, quietLogger()))
	require.Error(t, err)

	assert.False(t, c.Empty())
	assert.Equal(t, StateFailed, w.State())
}

func TestSubmitEmptyCart(t *testing.T) {
	creator := &stubCreator{}
	w := NewWorkflow(creator, time.Second, quietLogger())

	_, err := w.Submit(context.Background(), customerToken(t), cart.New(), identity.NewResolver(noLookup{}, quietLogger()))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, StateIdle, w.State())
	assert.Empty(t, creator.keys, "no request may reach the backend for an empty cart")
}

func TestSubmitRejectsReentry(t *testing.T) {
	c := filledCart()
	resolver := identity.NewResolver(noLookup{}, quietLogger())
	creator := &stubCreator{order: &domain.Order{ID: 9}}
	w := NewWorkflow(creator, time.Second, quietLogger())

	var reentryErr error
	creator.hook = func(context.Context) {
		if len(creator.keys) == 1 {
			_, reentryErr = w.Submit(context.Background(), customerToken(t), c, resolver)
		}
	}

	_, err := w.Submit(context.Background(), customerToken(t), c, resolver)
	require.NoError(t, err)
	assert.ErrorIs(t, reentryErr, ErrSubmissionInFlight)
	assert.Len(t, creator.keys, 1)
}

func TestSubmitConcurrentAttemptsCollapseToOne(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	creator := &stubCreator{
		order: &domain.Order{ID: 9},
		hook: func(context.Context) {
			close(entered)
			<-release
		},
	}
	w := NewWorkflow(creator, time.Second, quietLogger())
	c := filledCart()
	resolver := identity.NewResolver(noLookup{}, quietLogger())
	tok := customerToken(t)

	firstDone := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), tok, c, resolver)
		firstDone <- err
	}()

	// Second submission arrives while the first is parked inside the
	// backend call, like a double-click landing as two parallel requests.
	<-entered
	_, err := w.Submit(context.Background(), tok, c, resolver)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-firstDone)

	require.Len(t, creator.keys, 1, "the backend must see exactly one attempt")
	assert.True(t, c.Empty())
	assert.Equal(t, StateSucceeded, w.State())
}

func TestSubmitTimesOut(t *testing.T) {
	creator := &stubCreator{hook: func(ctx context.Context) { <-ctx.Done() }}
	w := NewWorkflow(creator, 10*time.Millisecond, quietLogger())
	c := filledCart()

	_, err := w.Submit(context.Background(), customerToken(t), c, identity.NewResolver(noLookup{}, quietLogger()))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, StateFailed, w.State())
	assert.False(t, c.Empty())
}

func TestSubmitUsesFreshAttemptKeys(t *testing.T) {
	creator := &stubCreator{err: errors.New("first attempt fails")}
	w := NewWorkflow(creator, time.Second, quietLogger())
	c := filledCart()
	resolver := identity.NewResolver(noLookup{}, quietLogger())

	_, err := w.Submit(context.Background(), customerToken(t), c, resolver)
	require.Error(t, err)
	w.Reset()

	creator.err = nil
	creator.order = &domain.Order{ID: 9}
	_, err = w.Submit(context.Background(), customerToken(t), c, resolver)
	require.NoError(t, err)

	require.Len(t, creator.keys, 2)
	assert.NotEqual(t, creator.keys[0], creator.keys[1])
	assert.NotEmpty(t, creator.keys[0])
}

func TestResetIgnoredWhileSubmitting(t *testing.T) {
	creator := &stubCreator{order: &domain.Order{ID: 9}}
	w := NewWorkflow(creator, time.Second, quietLogger())
	creator.hook = func(context.Context) {
		w.Reset()
	}

	_, err := w.Submit(context.Background(), customerToken(t), filledCart(), identity.NewResolver(noLookup{}, quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, w.State())
}
