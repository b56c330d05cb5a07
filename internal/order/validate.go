package order

import "regexp"

// Validation patterns for order draft fields. The predicates are pure
// and re-evaluated on every field change.
var (
	// 6-digit postal code, comma, non-empty locality (letters, digits,
	// spaces, . , -), e.g. "101000, Moscow, Lenina 1".
	addressPattern = regexp.MustCompile(`^\d{6},\s*[\p{L}\d\s.,-]+$`)

	// local@domain.tld, no whitespace, at least one dot after the @.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// +<1-2 digits> (<3 digits>) <3 digits>-<2 digits>-<2 digits>,
	// e.g. "+7 (999) 123-45-67".
	phonePattern = regexp.MustCompile(`^\+\d{1,2} \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// Messages surfaced next to the field on validation failure.
const (
	MsgInvalidAddress = "enter a 6-digit postal code, a comma and the locality"
	MsgInvalidEmail   = "enter an email like name@example.com"
	MsgInvalidPhone   = "enter a phone like +7 (999) 123-45-67"
	MsgNoPayment      = "select a payment method"
)

// ValidAddress reports whether the delivery address matches the
// postal-code-plus-locality format.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ValidEmail reports whether the value has the standard
// local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether the value matches the formatted phone
// pattern.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPayment reports whether a payment method has been selected.
func ValidPayment(s string) bool {
	return s != ""
}
