package domain

// Field names an order draft input tracked by FieldValidity.
type Field string

const (
	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// FieldValidity tracks the validation state of each order draft field
// independently. Step-advance eligibility is derived from this struct
// alone, never re-derived from the raw input strings.
type FieldValidity struct {
	Payment bool
	Address bool
	Email   bool
	Phone   bool
}

// AddressStepComplete reports whether the payment/address step can be
// advanced.
func (v FieldValidity) AddressStepComplete() bool {
	return v.Payment && v.Address
}

// ContactsStepComplete reports whether the contacts step can be
// advanced into submission.
func (v FieldValidity) ContactsStepComplete() bool {
	return v.Email && v.Phone
}

// OrderSnapshot is the immutable submission payload captured when the
// checkout enters Submitting. Cart mutations after capture do not
// alter an in-flight submission.
type OrderSnapshot struct {
	Payment string   `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Items   []string `json:"items"`
	Total   float64  `json:"total"`
}

// OrderResult is the order service's answer to a successful submission.
type OrderResult struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}
