package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elizavetaa0/web-larek-frontend/internal/api"
	"github.com/elizavetaa0/web-larek-frontend/internal/cart"
	"github.com/elizavetaa0/web-larek-frontend/internal/catalog"
	"github.com/elizavetaa0/web-larek-frontend/internal/checkout"
	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/order"
)

// busMsg carries a bus event into the bubbletea update loop. The view
// layer only reads emitted events and state getters; all mutation goes
// through state-holder commands.
type busMsg struct {
	name    string
	payload any
}

type catalogLoadedMsg struct {
	err error
}

type commandDoneMsg struct {
	err error
}

type model struct {
	app *app

	products   []domain.Product
	cartItems  []domain.CartItem
	cartTotal  float64
	step       domain.Step
	fieldErrs  map[domain.Field]string
	failReason string
	lastOrder  *domain.OrderResult

	cursor  int
	contact int // 0 = email, 1 = phone focused
	address string
	email   string
	phone   string
	payment string
	status  string
}

// app bundles the engine the view drives.
type app struct {
	client  *api.Client
	catalog *catalog.State
	cart    *cart.State
	draft   *order.Draft
	machine *checkout.Machine
}

func initialModel(a *app) model {
	return model{
		app:       a,
		step:      domain.StepCartReview,
		fieldErrs: make(map[domain.Field]string),
		status:    "Loading catalog...",
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		products, err := m.app.client.ListProducts(context.Background())
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		m.app.catalog.SetCatalog(products)
		return catalogLoadedMsg{}
	}
}

func (m model) advanceCmd() tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{err: m.app.machine.Advance(context.Background())}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busMsg:
		return m.onBusEvent(msg), nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Catalog load failed: %v", msg.err)
		} else {
			m.status = "Ready"
		}
		return m, nil

	case commandDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m model) onBusEvent(msg busMsg) model {
	switch msg.name {
	case catalog.EventChanged:
		m.products = msg.payload.(catalog.ChangedPayload).Items
	case cart.EventChanged:
		p := msg.payload.(cart.ChangedPayload)
		m.cartItems = p.Items
		m.cartTotal = p.Total
	case checkout.EventStep:
		m.step = msg.payload.(checkout.StepPayload).Step
		if m.step == domain.StepSubmitting {
			m.status = "Submitting order..."
		}
	case order.EventFieldInvalid:
		p := msg.payload.(order.FieldInvalidPayload)
		m.fieldErrs[p.Field] = p.Message
	case checkout.EventFailed:
		m.failReason = msg.payload.(checkout.FailedPayload).Reason
	case checkout.EventSubmitted:
		result := msg.payload.(checkout.SubmittedPayload).Result
		m.lastOrder = &result
	}
	return m
}

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.step {
	case domain.StepCartReview:
		return m.onCartReviewKey(msg)
	case domain.StepAddressPayment:
		return m.onAddressKey(msg)
	case domain.StepContacts:
		return m.onContactsKey(msg)
	case domain.StepSuccess:
		if msg.String() == "enter" {
			if err := m.app.machine.Reset(); err != nil {
				m.status = err.Error()
			}
			m.lastOrder = nil
		}
		return m, nil
	case domain.StepFailed:
		switch msg.String() {
		case "r":
			if err := m.app.machine.Retry(); err != nil {
				m.status = err.Error()
			}
		case "esc":
			if err := m.app.machine.Abort(); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) onCartReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(m.products) {
			m.toggleCurrent()
		}
	case "enter":
		return m, m.advanceCmd()
	}
	return m, nil
}

func (m *model) toggleCurrent() {
	p := m.products[m.cursor]
	if m.app.cart.Contains(p.ID) {
		if err := m.app.cart.RemoveItem(p.ID); err != nil {
			m.status = err.Error()
		}
		return
	}
	if err := m.app.cart.AddItem(p); err != nil {
		m.status = err.Error()
	}
}

func (m model) onAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.app.machine.Abort(); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case "enter":
		return m, m.advanceCmd()
	case "left":
		m.payment = "online"
	case "right":
		m.payment = "cash"
	case "backspace":
		if len(m.address) > 0 {
			m.address = trimLastRune(m.address)
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.address += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.address += " "
		}
	}

	if m.payment != "" {
		m.app.draft.SetPayment(m.payment)
	}
	m.app.draft.SetAddress(m.address)
	m.refreshFieldErrors()
	return m, nil
}

func (m model) onContactsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.app.machine.Abort(); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case "enter":
		return m, m.advanceCmd()
	case "tab":
		m.contact = 1 - m.contact
	case "backspace":
		if m.contact == 0 && len(m.email) > 0 {
			m.email = trimLastRune(m.email)
		}
		if m.contact == 1 && len(m.phone) > 0 {
			m.phone = trimLastRune(m.phone)
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			text := string(msg.Runes)
			if msg.Type == tea.KeySpace {
				text = " "
			}
			if m.contact == 0 {
				m.email += text
			} else {
				m.phone += text
			}
		}
	}

	m.app.draft.SetEmail(m.email)
	m.app.draft.SetPhone(m.phone)
	m.refreshFieldErrors()
	return m, nil
}

// refreshFieldErrors drops stale messages for fields that became valid.
func (m *model) refreshFieldErrors() {
	v := m.app.draft.Validity()
	if v.Payment {
		delete(m.fieldErrs, domain.FieldPayment)
	}
	if v.Address {
		delete(m.fieldErrs, domain.FieldAddress)
	}
	if v.Email {
		delete(m.fieldErrs, domain.FieldEmail)
	}
	if v.Phone {
		delete(m.fieldErrs, domain.FieldPhone)
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "web-larek storefront")
	fmt.Fprintln(b, "")

	switch m.step {
	case domain.StepCartReview:
		m.viewCatalog(b)
	case domain.StepAddressPayment:
		m.viewAddressPayment(b)
	case domain.StepContacts:
		m.viewContacts(b)
	case domain.StepSubmitting:
		fmt.Fprintln(b, "Submitting order...")
	case domain.StepSuccess:
		if m.lastOrder != nil {
			fmt.Fprintf(b, "Order %s placed, total %.0f\n", m.lastOrder.ID, m.lastOrder.Total)
		}
		fmt.Fprintln(b, "\nPress enter to continue shopping")
	case domain.StepFailed:
		fmt.Fprintf(b, "Order failed: %s\n", m.failReason)
		fmt.Fprintln(b, "\nControls: r retry, esc back to catalog")
	}

	if m.status != "" {
		fmt.Fprintf(b, "\nStatus: %s\n", m.status)
	}
	return b.String()
}

func (m model) viewCatalog(b *strings.Builder) {
	fmt.Fprintln(b, "Catalog:")
	for i, p := range m.products {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		inCart := " "
		if m.app.cart.Contains(p.ID) {
			inCart = "*"
		}
		if p.Available() {
			fmt.Fprintf(b, " %s [%s] %s — %.0f (%s)\n", marker, inCart, p.Title, *p.Price, p.Category)
		} else {
			fmt.Fprintf(b, " %s [ ] %s — unavailable (%s)\n", marker, p.Title, p.Category)
		}
	}

	fmt.Fprintf(b, "\nCart: %d items, total %.0f\n", len(m.cartItems), m.cartTotal)
	fmt.Fprintln(b, "\nControls: up/down move, space toggle, enter checkout, q quit")
}

func (m model) viewAddressPayment(b *strings.Builder) {
	fmt.Fprintln(b, "Checkout 1/2 — payment and address")
	fmt.Fprintln(b, "")

	online, cash := " ", " "
	switch m.payment {
	case "online":
		online = "x"
	case "cash":
		cash = "x"
	}
	fmt.Fprintf(b, " Payment: [%s] online  [%s] cash (left/right)\n", online, cash)
	fmt.Fprintf(b, " Address: %s_\n", m.address)

	m.viewFieldError(b, domain.FieldPayment)
	m.viewFieldError(b, domain.FieldAddress)
	fmt.Fprintln(b, "\nControls: type address, enter next, esc cancel")
}

func (m model) viewContacts(b *strings.Builder) {
	fmt.Fprintln(b, "Checkout 2/2 — contacts")
	fmt.Fprintln(b, "")

	emailMark, phoneMark := " ", " "
	if m.contact == 0 {
		emailMark = ">"
	} else {
		phoneMark = ">"
	}
	fmt.Fprintf(b, " %s Email: %s\n", emailMark, m.email)
	fmt.Fprintf(b, " %s Phone: %s\n", phoneMark, m.phone)

	m.viewFieldError(b, domain.FieldEmail)
	m.viewFieldError(b, domain.FieldPhone)
	fmt.Fprintln(b, "\nControls: tab switch field, enter submit, esc cancel")
}

func (m model) viewFieldError(b *strings.Builder, f domain.Field) {
	if msg, ok := m.fieldErrs[f]; ok {
		fmt.Fprintf(b, "   ! %s: %s\n", f, msg)
	}
}
