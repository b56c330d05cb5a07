package checkout

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/elizavetaa0/web-larek-frontend/internal/cart"
	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
	"github.com/elizavetaa0/web-larek-frontend/internal/order"
)

const (
	// EventStep is emitted on every step transition.
	EventStep = "order:step"
	// EventSubmitted is emitted when the order service confirms the
	// submission.
	EventSubmitted = "order:submitted"
	// EventFailed is emitted when the submission fails, with the
	// reason for display.
	EventFailed = "order:failed"
)

type StepPayload struct {
	Step domain.Step `json:"step"`
}

type SubmittedPayload struct {
	Result domain.OrderResult `json:"result"`
}

type FailedPayload struct {
	Reason string `json:"reason"`
}

// Submitter sends a completed order snapshot to the order service.
type Submitter interface {
	SubmitOrder(ctx context.Context, snapshot domain.OrderSnapshot) (*domain.OrderResult, error)
}

// Machine sequences the checkout steps, gating each transition on the
// draft's field validity and on cart non-emptiness. It holds the cart
// and draft by reference but never writes their fields directly; it
// only reads validity and issues commands they execute themselves.
type Machine struct {
	mu        sync.Mutex
	bus       *events.Bus
	cart      *cart.State
	draft     *order.Draft
	submitter Submitter
	log       *zap.Logger
	step      domain.Step
}

func NewMachine(bus *events.Bus, cartState *cart.State, draft *order.Draft, submitter Submitter, log *zap.Logger) *Machine {
	return &Machine{
		bus:       bus,
		cart:      cartState,
		draft:     draft,
		submitter: submitter,
		log:       log,
		step:      domain.StepCartReview,
	}
}

// Step returns the current checkout step.
func (m *Machine) Step() domain.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Advance moves the checkout to the next step if the current step's
// guard is satisfied. From Contacts it captures the order snapshot,
// locks the cart and performs the submission; the context bounds the
// outbound call.
func (m *Machine) Advance(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case domain.StepCartReview:
		if m.cart.Len() == 0 {
			return m.reject("advance", domain.ErrEmptyCart.Error())
		}
		m.transition(domain.StepAddressPayment)
		return nil

	case domain.StepAddressPayment:
		if !m.draft.Validity().AddressStepComplete() {
			return m.reject("advance", "address or payment method not valid")
		}
		m.transition(domain.StepContacts)
		return nil

	case domain.StepContacts:
		if !m.draft.Validity().ContactsStepComplete() {
			return m.reject("advance", "email or phone not valid")
		}
		return m.submit(ctx)

	default:
		return m.reject("advance", "no next step from here")
	}
}

// Retry returns a failed checkout to the contacts step so the user can
// correct the draft and submit again. The draft is preserved.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != domain.StepFailed {
		return m.reject("retry", "retry is only available after a failed submission")
	}
	m.transition(domain.StepContacts)
	return nil
}

// Reset returns a successful checkout to cart review. The cart was
// already cleared and the draft reset on the Success transition, so a
// subsequent advance requires a non-empty cart again.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != domain.StepSuccess {
		return m.reject("reset", "reset is only available after a successful checkout")
	}
	m.transition(domain.StepCartReview)
	return nil
}

// Abort abandons the checkout, discarding the draft and returning to
// cart review. The cart is left intact. Aborting an in-flight
// submission is rejected.
func (m *Machine) Abort() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case domain.StepSubmitting:
		return m.reject("abort", "submission in progress")
	case domain.StepCartReview:
		return nil
	}

	m.draft.Reset()
	m.transition(domain.StepCartReview)
	return nil
}

// submit runs the Submitting leg: snapshot, locked cart, outbound
// call, then Success or Failed. Called with m.mu held.
func (m *Machine) submit(ctx context.Context) error {
	snapshot := m.snapshot()

	m.cart.BeginCheckout()
	m.transition(domain.StepSubmitting)

	result, err := m.submitter.SubmitOrder(ctx, snapshot)

	m.cart.EndCheckout()

	if err != nil {
		m.transition(domain.StepFailed)
		m.log.Warn("order submission failed",
			zap.Float64("total", snapshot.Total),
			zap.Int("items", len(snapshot.Items)),
			zap.Error(err))
		m.bus.Emit(EventFailed, FailedPayload{Reason: err.Error()})
		return err
	}

	m.draft.Reset()
	if err := m.cart.Clear(); err != nil {
		// cannot happen: the lock was released above
		m.log.Error("clearing cart after success", zap.Error(err))
	}
	m.transition(domain.StepSuccess)
	m.log.Info("order submitted",
		zap.String("order_id", result.ID),
		zap.Float64("total", result.Total))
	m.bus.Emit(EventSubmitted, SubmittedPayload{Result: *result})
	return nil
}

// snapshot captures the immutable submission payload from the draft
// and the cart. Called with m.mu held.
func (m *Machine) snapshot() domain.OrderSnapshot {
	items := m.cart.Items()
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return domain.OrderSnapshot{
		Payment: m.draft.Payment(),
		Address: m.draft.Address(),
		Email:   m.draft.Email(),
		Phone:   m.draft.Phone(),
		Items:   ids,
		Total:   m.cart.Total(),
	}
}

func (m *Machine) transition(to domain.Step) {
	if !domain.CanTransition(m.step, to) {
		// the command methods gate everything, this is a programming error
		m.log.Error("illegal step transition",
			zap.String("from", m.step.String()),
			zap.String("to", to.String()))
		return
	}
	m.step = to
	m.bus.Emit(EventStep, StepPayload{Step: to})
}

func (m *Machine) reject(command, reason string) error {
	err := &domain.StateError{Command: command, Step: m.step, Reason: reason}
	m.log.Warn("checkout command rejected",
		zap.String("command", command),
		zap.String("step", m.step.String()),
		zap.String("reason", reason))
	return err
}
