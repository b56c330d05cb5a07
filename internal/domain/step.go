package domain

// Step is a checkout step. It is owned exclusively by the checkout
// state machine; no other component sets it.
type Step string

const (
	StepCartReview     Step = "CART_REVIEW"
	StepAddressPayment Step = "ADDRESS_PAYMENT"
	StepContacts       Step = "CONTACTS"
	StepSubmitting     Step = "SUBMITTING"
	StepSuccess        Step = "SUCCESS"
	StepFailed         Step = "FAILED"
)

// String representation (for logging)
func (s Step) String() string {
	return string(s)
}

// allowedTransitions defines the valid step transitions. The key is
// the current step, the value the set of valid target steps.
var allowedTransitions = map[Step][]Step{
	StepCartReview:     {StepAddressPayment},
	StepAddressPayment: {StepContacts, StepCartReview},
	StepContacts:       {StepSubmitting, StepCartReview},
	StepSubmitting:     {StepSuccess, StepFailed},
	StepFailed:         {StepContacts, StepCartReview},
	StepSuccess:        {StepCartReview},
}

// CanTransition reports whether moving from one step to another is
// allowed by the checkout flow.
func CanTransition(from, to Step) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
