package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/otabekj/dukon/internal/ledger"
)

type paymentState int

const (
	paymentStateLoading paymentState = iota
	paymentStateForm
	paymentStateResult
)

// PaymentModel records a payment from a client against their debt.
type PaymentModel struct {
	CommonModel
	ledgerService *ledger.Service

	state paymentState
	form  *huh.Form
	err   error

	clientID  int64
	amountStr string
	saved     *ledger.Payment
}

func NewPaymentModel(svc *ledger.Service) PaymentModel {
	return PaymentModel{
		ledgerService: svc,
		state:         paymentStateLoading,
	}
}

func (m PaymentModel) Title() string { return "Record Payment" }

func (m PaymentModel) ShortHelp() string {
	if m.state == paymentStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m PaymentModel) Init() tea.Cmd {
	return m.loadClientsCmd()
}

func (m PaymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentClientsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = paymentStateResult

			return m, nil
		}

		m.form = m.buildForm(msg.clients)
		m.state = paymentStateForm

		return m, m.form.Init()

	case paymentSavedMsg:
		m.err = msg.err
		m.saved = msg.payment
		m.state = paymentStateResult

		return m, nil
	}

	switch m.state {
	case paymentStateForm:
		return m.updateForm(msg)
	case paymentStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m PaymentModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m PaymentModel) buildForm(clients []ledger.Client) *huh.Form {
	options := make([]huh.Option[int64], 0, len(clients))
	for _, c := range clients {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("client").
				Title("Client").
				Options(options...).
				Value(&m.clientID),

			huh.NewInput().
				Key("amount").
				Title("Amount (so'm)").
				Placeholder("50000").
				Value(&m.amountStr).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m PaymentModel) View() string {
	switch m.state {
	case paymentStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")

	case paymentStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case paymentStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(errorText(m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Payment Recorded")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header,
				"",
				"Amount: "+FormatAmount(m.saved.Amount),
				"Date:   "+FormatDate(m.saved.PaymentDate),
			),
		)
	}

	return ""
}

type paymentClientsMsg struct {
	clients []ledger.Client
	err     error
}

func (m PaymentModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.ledgerService.ListClients(ctx)
		if err != nil {
			return paymentClientsMsg{err: err}
		}

		if len(clients) == 0 {
			return paymentClientsMsg{err: fmt.Errorf("no clients yet; add one first")}
		}

		return paymentClientsMsg{clients: clients}
	}
}

type paymentSavedMsg struct {
	payment *ledger.Payment
	err     error
}

func (m PaymentModel) saveCmd() tea.Cmd {
	// Read through the form keys; the bound fields live on a stale model copy.
	clientID, _ := m.form.Get("client").(int64)
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payment, err := m.ledgerService.CreatePayment(ctx, ledger.PaymentParams{
			ClientID: clientID,
			Amount:   amount,
		})

		return paymentSavedMsg{payment: payment, err: err}
	}
}
