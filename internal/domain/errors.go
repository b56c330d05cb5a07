package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyCart rejects advancing past cart review with nothing to buy.
var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// UnavailableItemError is returned when adding a product without a
// price to the cart. Recoverable: views disable the add control
// instead of surfacing a dialog.
type UnavailableItemError struct {
	ProductID string
}

func (e *UnavailableItemError) Error() string {
	return fmt.Sprintf("product %s has no price and cannot be purchased", e.ProductID)
}

// StateError rejects a command that is invalid for the current
// checkout step, e.g. mutating the cart while a submission is in
// flight. Rejections are logged by the caller, never silently dropped.
type StateError struct {
	Command string
	Step    Step
	Reason  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("command %q rejected in step %s: %s", e.Command, e.Step, e.Reason)
}

// ValidationError is a field-level validation failure, either local or
// surfaced by the order service. It never blocks other fields.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("field %s invalid: %s", e.Field, e.Message)
}

// NetworkError wraps a transport failure while talking to a remote
// collaborator. Recoverable: the user may retry, there is no
// automatic retry loop.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
