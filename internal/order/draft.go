package order

import (
	"sync"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
)

// EventFieldInvalid is emitted when an edited field fails its
// validation predicate.
const EventFieldInvalid = "order:fieldInvalid"

type FieldInvalidPayload struct {
	Field   domain.Field `json:"field"`
	Message string       `json:"message"`
}

// Draft holds the in-progress checkout field values and their
// per-field validity. It is created empty when checkout starts,
// populated as the user edits, read as a snapshot at submission time
// and reset on success or abandonment.
type Draft struct {
	mu       sync.Mutex
	bus      *events.Bus
	payment  string
	address  string
	email    string
	phone    string
	validity domain.FieldValidity
}

func NewDraft(bus *events.Bus) *Draft {
	return &Draft{bus: bus}
}

// SetPayment records the selected payment method.
func (d *Draft) SetPayment(method string) {
	d.mu.Lock()
	d.payment = method
	d.validity.Payment = ValidPayment(method)
	valid := d.validity.Payment
	d.mu.Unlock()

	if !valid {
		d.bus.Emit(EventFieldInvalid, FieldInvalidPayload{Field: domain.FieldPayment, Message: MsgNoPayment})
	}
}

// SetAddress records the delivery address and revalidates it.
func (d *Draft) SetAddress(v string) {
	d.mu.Lock()
	d.address = v
	d.validity.Address = ValidAddress(v)
	valid := d.validity.Address
	d.mu.Unlock()

	if !valid {
		d.bus.Emit(EventFieldInvalid, FieldInvalidPayload{Field: domain.FieldAddress, Message: MsgInvalidAddress})
	}
}

// SetEmail records the contact email and revalidates it.
func (d *Draft) SetEmail(v string) {
	d.mu.Lock()
	d.email = v
	d.validity.Email = ValidEmail(v)
	valid := d.validity.Email
	d.mu.Unlock()

	if !valid {
		d.bus.Emit(EventFieldInvalid, FieldInvalidPayload{Field: domain.FieldEmail, Message: MsgInvalidEmail})
	}
}

// SetPhone records the contact phone and revalidates it.
func (d *Draft) SetPhone(v string) {
	d.mu.Lock()
	d.phone = v
	d.validity.Phone = ValidPhone(v)
	valid := d.validity.Phone
	d.mu.Unlock()

	if !valid {
		d.bus.Emit(EventFieldInvalid, FieldInvalidPayload{Field: domain.FieldPhone, Message: MsgInvalidPhone})
	}
}

// Validity returns the current per-field validation state.
func (d *Draft) Validity() domain.FieldValidity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.validity
}

func (d *Draft) Payment() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.payment
}

func (d *Draft) Address() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.address
}

func (d *Draft) Email() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.email
}

func (d *Draft) Phone() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phone
}

// Reset discards all field values and validity, returning the draft to
// its initial empty state.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.payment = ""
	d.address = ""
	d.email = ""
	d.phone = ""
	d.validity = domain.FieldValidity{}
}
