package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
)

type fakeCreator struct {
	reqs    []checkout.Request
	payment *checkout.Payment
	err     error
}

func (f *fakeCreator) CreatePix(_ context.Context, req checkout.Request) (*checkout.Payment, error) {
	f.reqs = append(f.reqs, req)
	return f.payment, f.err
}

func updateCheckout(t *testing.T, m CheckoutModel, msg tea.Msg) (CheckoutModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(CheckoutModel)
	require.True(t, ok)
	return cm, cmd
}

func filledForm(c CheckoutCreator, name, email string) CheckoutModel {
	m := NewCheckoutModel(c, checkout.OfferPopup(), 180, 0, 80, 24)
	m.inputs[fieldName].SetValue(name)
	m.inputs[fieldEmail].SetValue(email)
	m.setFocus(fieldEmail)
	return m
}

func TestCheckoutInvalidSubmitStaysOnForm(t *testing.T) {
	fc := &fakeCreator{}
	m := filledForm(fc, "Ana", "ana.example.com")

	m, cmd := updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stageForm, m.stage)
	assert.ErrorIs(t, m.err, checkout.ErrInvalidEmail)
	assert.Contains(t, m.View(), "valid email")
	assert.Empty(t, fc.reqs)
}

func TestCheckoutEnterMovesToNextField(t *testing.T) {
	m := NewCheckoutModel(&fakeCreator{}, checkout.OfferVSL(), 0, 0, 80, 24)
	m, _ = updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, fieldEmail, m.focus)
	assert.Equal(t, stageForm, m.stage)
}

func TestCheckoutSuccess(t *testing.T) {
	fc := &fakeCreator{payment: &checkout.Payment{PaymentID: "pay_9", QRCode: "000201pix", Status: "pending", Amount: 9.9}}
	m := filledForm(fc, " Ana ", "ana@example.com")

	m, cmd := updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, stageLoading, m.stage)
	assert.Contains(t, m.View(), "Generating Pix")

	msg := m.createPix(checkout.Request{Name: "Ana", Email: "ana@example.com", Fluxo: checkout.FlowPopup})()
	m, _ = updateCheckout(t, m, msg)

	assert.Equal(t, stageDone, m.stage)
	require.NotNil(t, m.Payment())
	assert.Equal(t, "pay_9", m.Payment().PaymentID)
	assert.Contains(t, m.View(), "000201pix")
	require.Len(t, fc.reqs, 1)
	assert.Equal(t, checkout.FlowPopup, fc.reqs[0].Fluxo)

	m, cmd = updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.IsGoingBack())
	assert.True(t, isQuitCmd(cmd))
}

func TestCheckoutBackendError(t *testing.T) {
	m := filledForm(&fakeCreator{}, "Ana", "ana@example.com")
	m.stage = stageLoading

	m, _ = updateCheckout(t, m, pixResultMsg{err: &checkout.APIError{StatusCode: 200, Body: "email bloqueado"}})
	assert.Equal(t, stageForm, m.stage)
	assert.Nil(t, m.Payment())
	assert.Contains(t, m.View(), "email bloqueado")
}

func TestCheckoutEscIgnoredWhileLoading(t *testing.T) {
	m := filledForm(&fakeCreator{}, "Ana", "ana@example.com")
	m.stage = stageLoading

	m, _ = updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsGoingBack())

	m.stage = stageForm
	m, _ = updateCheckout(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
}

func TestErrorText(t *testing.T) {
	assert.Contains(t, errorText(checkout.ErrMissingFields), "fill in")
	assert.Contains(t, errorText(context.DeadlineExceeded), "too long")
	assert.Equal(t, "nope", errorText(&checkout.APIError{StatusCode: 500, Body: "nope"}))
	assert.Contains(t, errorText(errors.New("dial tcp")), "Could not reach")
}
