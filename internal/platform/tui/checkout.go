package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
	"github.com/vovakirdan/candy-bonus/internal/games/candy"
)

// CheckoutCreator creates Pix payments. *checkout.Client satisfies it.
type CheckoutCreator interface {
	CreatePix(ctx context.Context, req checkout.Request) (*checkout.Payment, error)
}

type checkoutStage int

const (
	stageForm checkoutStage = iota
	stageLoading
	stageDone
)

const (
	fieldName = iota
	fieldEmail
)

// pixResultMsg carries the outcome of a CreatePix call.
type pixResultMsg struct {
	payment *checkout.Payment
	err     error
}

// CheckoutModel is the form that turns a bonus into a Pix payment.
type CheckoutModel struct {
	client    CheckoutCreator
	offer     checkout.Offer
	bonus     float64
	timeout   time.Duration
	inputs    []textinput.Model
	focus     int
	spinner   spinner.Model
	stage     checkoutStage
	payment   *checkout.Payment
	err       error
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewCheckoutModel creates the form for an offer. bonus is the amount won
// in the last round, or zero when opened from the menu.
func NewCheckoutModel(client CheckoutCreator, offer checkout.Offer, bonus float64, timeout time.Duration, width, height int) CheckoutModel {
	name := textinput.New()
	name.Placeholder = "Your full name"
	name.Prompt = "Name  › "
	name.CharLimit = 80
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email › "
	email.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(themeColor(offer.Theme))

	return CheckoutModel{
		client:  client,
		offer:   offer,
		bonus:   bonus,
		timeout: timeout,
		inputs:  []textinput.Model{name, email},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

func themeColor(t checkout.Theme) lipgloss.Color {
	if t == checkout.ThemeRed {
		return lipgloss.Color("203")
	}
	return lipgloss.Color("135")
}

// Init starts the cursor blinking.
func (m CheckoutModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the checkout form.
func (m CheckoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pixResultMsg:
		if msg.err != nil {
			m.stage = stageForm
			m.err = msg.err
			cmd := m.inputs[m.focus].Focus()
			return m, cmd
		}
		m.stage = stageDone
		m.payment = msg.payment
		return m, nil

	case spinner.TickMsg:
		if m.stage != stageLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m CheckoutModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.stage != stageLoading {
			m.goingBack = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.stage {
	case stageLoading:
		return m, nil
	case stageDone:
		if msg.String() == "enter" || msg.String() == "q" {
			m.goingBack = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % len(m.inputs))
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, cmd
	case "enter":
		if m.focus < len(m.inputs)-1 {
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
		return m.submit()
	}

	return m.updateFocused(msg)
}

func (m *CheckoutModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m CheckoutModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stage != stageForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the form and starts the request.
func (m CheckoutModel) submit() (tea.Model, tea.Cmd) {
	req := checkout.Request{
		Name:  strings.TrimSpace(m.inputs[fieldName].Value()),
		Email: strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Fluxo: m.offer.Flow,
	}
	if err := req.Validate(); err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.stage = stageLoading
	m.inputs[m.focus].Blur()
	return m, tea.Batch(m.spinner.Tick, m.createPix(req))
}

func (m CheckoutModel) createPix(req checkout.Request) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		p, err := client.CreatePix(ctx, req)
		return pixResultMsg{payment: p, err: err}
	}
}

// errorText turns a checkout error into something the player can act on.
func errorText(err error) string {
	var apiErr *checkout.APIError
	switch {
	case errors.Is(err, checkout.ErrMissingFields):
		return "Please fill in name and email."
	case errors.Is(err, checkout.ErrInvalidEmail):
		return "Please enter a valid email."
	case errors.Is(err, context.DeadlineExceeded):
		return "The payment server took too long. Try again in a few seconds."
	case errors.As(err, &apiErr):
		return apiErr.Body
	default:
		return "Could not reach the payment server. Check your connection."
	}
}

var (
	checkoutMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	checkoutError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	checkoutGood  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// View renders the form, the spinner or the generated payment.
func (m CheckoutModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	accent := themeColor(m.offer.Theme)
	title := lipgloss.NewStyle().Bold(true).Foreground(accent)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(min(max(m.width-4, 40), 64))

	var b strings.Builder
	b.WriteString(title.Render(m.offer.Description))
	b.WriteString("\n\n")
	b.WriteString(m.priceLine())
	b.WriteString("\n")
	if m.bonus > 0 {
		b.WriteString(checkoutGood.Render("Your bonus: " + candy.FormatBonus(m.bonus)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.stage {
	case stageLoading:
		b.WriteString(m.spinner.View() + " Generating Pix...")
	case stageDone:
		b.WriteString(m.paymentView())
	default:
		for _, in := range m.inputs {
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(checkoutError.Render(errorText(m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(checkoutMuted.Render("tab: next field  •  enter: generate Pix  •  esc: back"))
	}

	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(b.String()))
}

func (m CheckoutModel) priceLine() string {
	price := fmt.Sprintf("R$ %.2f", m.offer.Price)
	if !m.offer.Discounted() {
		return lipgloss.NewStyle().Bold(true).Render(price)
	}
	was := lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245")).
		Render(fmt.Sprintf("R$ %.2f", m.offer.OriginalPrice))
	return fmt.Sprintf("%s  %s  %s", was, lipgloss.NewStyle().Bold(true).Render(price),
		checkoutGood.Render(fmt.Sprintf("%d%% OFF", m.offer.DiscountPercent())))
}

func (m CheckoutModel) paymentView() string {
	p := m.payment
	var b strings.Builder
	b.WriteString(checkoutGood.Render("Pix generated!"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Payment: %s\n", p.PaymentID)
	fmt.Fprintf(&b, "Amount:  R$ %.2f\n", p.Amount)
	fmt.Fprintf(&b, "Status:  %s\n\n", p.Status)
	b.WriteString("Pix copy-paste code:\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.QRCode))
	b.WriteString("\n\n")
	if p.PaymentURL != "" {
		b.WriteString(checkoutMuted.Render("Or pay at " + p.PaymentURL))
		b.WriteString("\n")
	}
	b.WriteString(checkoutMuted.Render("enter: done"))
	return b.String()
}

// Payment returns the generated payment, if any.
func (m CheckoutModel) Payment() *checkout.Payment {
	return m.payment
}

// IsGoingBack returns true if user left the form.
func (m CheckoutModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m CheckoutModel) IsQuitting() bool {
	return m.quitting
}

// RunCheckout runs the checkout form in its own program and returns the
// generated payment, or nil if the player left without one.
func RunCheckout(client CheckoutCreator, offer checkout.Offer, bonus float64, timeout time.Duration, width, height int) (*checkout.Payment, error) {
	p := tea.NewProgram(
		NewCheckoutModel(client, offer, bonus, timeout, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(CheckoutModel)
	if !ok {
		return nil, nil
	}
	return m.Payment(), nil
}
