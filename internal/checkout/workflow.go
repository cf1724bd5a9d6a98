package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"heladeria-storefront/internal/cart"
	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/identity"
	"heladeria-storefront/internal/token"
)

// State tracks one checkout attempt through the submission workflow.
type State string

const (
	StateIdle       State = "Idle"
	StateBuilding   State = "Building"
	StateSubmitting State = "Submitting"
	StateSucceeded  State = "Succeeded"
	StateFailed     State = "Failed"
)

var (
	// ErrSubmissionInFlight refuses a second Submit while one is running.
	ErrSubmissionInFlight = errors.New("an order submission is already in flight")
	// ErrTimeout reports that the backend did not answer within the
	// configured submission window.
	ErrTimeout = errors.New("order submission timed out")
)

type orderCreator interface {
	CreateOrder(ctx context.Context, bearer string, req domain.OrderRequest, idempotencyKey string) (*domain.Order, error)
}

// Workflow runs the sequential checkout protocol: resolve identity, build
// the payload, submit, reconcile. Attempts never overlap: the state guard is
// a check-and-set under the workflow's lock, so concurrent Submits (a
// double-click lands as two parallel requests) collapse to one attempt and
// one idempotency key. A failure at any step leaves the cart untouched so
// the user can retry by re-invoking the action. There is no automatic retry.
type Workflow struct {
	orders  orderCreator
	logger  *logrus.Logger
	timeout time.Duration

	mu         sync.Mutex
	state      State
	attemptKey string
}

func NewWorkflow(orders orderCreator, timeout time.Duration, logger *logrus.Logger) *Workflow {
	return &Workflow{
		orders:  orders,
		logger:  logger,
		timeout: timeout,
		state:   StateIdle,
	}
}

// State returns the workflow's current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Reset returns the workflow to Idle after a terminal state has been shown.
// It is ignored while an attempt is in progress.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateBuilding && w.state != StateSubmitting {
		w.state = StateIdle
	}
}

// AttemptKey returns the idempotency key of the most recent attempt.
func (w *Workflow) AttemptKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attemptKey
}

// begin claims the workflow for one attempt. Building and Submitting both
// count as in flight; the claim and the state read are one critical section
// so two concurrent Submits can never both pass.
func (w *Workflow) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateBuilding || w.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	w.state = StateBuilding
	return nil
}

func (w *Workflow) transition(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Submit runs one checkout attempt. The cart is cleared only after the
// backend confirms the order. Each attempt gets a fresh idempotency key, and
// the network suspend point runs under the configured timeout so a hung
// backend fails the attempt instead of pinning it in Submitting forever.
func (w *Workflow) Submit(ctx context.Context, tok *token.Token, c *cart.Cart, resolver *identity.Resolver) (*domain.Order, error) {
	if err := w.begin(); err != nil {
		return nil, err
	}

	ref, err := resolver.Resolve(ctx, tok)
	if err != nil {
		w.transition(StateIdle)
		return nil, err
	}

	req, err := c.OrderRequest(ref)
	if err != nil {
		w.transition(StateIdle)
		return nil, err
	}

	w.mu.Lock()
	w.attemptKey = uuid.NewString()
	w.state = StateSubmitting
	key := w.attemptKey
	w.mu.Unlock()

	submitCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	order, err := w.orders.CreateOrder(submitCtx, tok.Raw, req, key)
	if err != nil {
		w.transition(StateFailed)
		if errors.Is(err, context.DeadlineExceeded) {
			w.logger.WithField("attempt", key).Warn("order submission timed out")
			return nil, ErrTimeout
		}
		return nil, err
	}

	c.Clear()
	w.transition(StateSucceeded)
	w.logger.WithFields(logrus.Fields{
		"order":   order.ID,
		"attempt": key,
	}).Info("order created")
	return order, nil
}
