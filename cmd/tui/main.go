package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/otabekj/dukon/cmd/tui/internal/view"
	"github.com/otabekj/dukon/internal/config"
	"github.com/otabekj/dukon/internal/export"
	"github.com/otabekj/dukon/internal/ledger"
	ledgerStore "github.com/otabekj/dukon/internal/ledger/store"
	"github.com/otabekj/dukon/internal/report"
)

type model struct {
	ledgerService *ledger.Service
	reportService *report.Service
	exportService *export.Service

	currentView View

	dashboardView    view.DashboardModel
	kassaView        view.KassaModel
	transactionsView view.TransactionsModel
	paymentView      view.PaymentModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewKassa        View = 2
	ViewTransactions View = 3
	ViewPayment      View = 4
	ViewExport       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := ledgerStore.New(cfg.DB.Path)
	if err := store.Init(context.Background()); err != nil {
		slog.Error("failed to open data file", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(store)
	reportSvc := report.NewService(ledgerSvc)
	exportSvc := export.NewService(ledgerSvc)

	return model{
		ledgerService:    ledgerSvc,
		reportService:    reportSvc,
		exportService:    exportSvc,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(reportSvc),
		kassaView:        view.NewKassaModel(reportSvc),
		transactionsView: view.NewTransactionsModel(reportSvc),
		paymentView:      view.NewPaymentModel(ledgerSvc),
		exportView:       view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.reportService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewKassa
				m.kassaView = view.NewKassaModel(m.reportService)

				return m, m.kassaView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.reportService)

				return m, m.transactionsView.Init()
			case "4":
				m.currentView = ViewPayment
				m.paymentView = view.NewPaymentModel(m.ledgerService)

				return m, m.paymentView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewKassa:
		var newModel tea.Model
		newModel, cmd = m.kassaView.Update(msg)
		m.kassaView = newModel.(view.KassaModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewPayment:
		var newModel tea.Model
		newModel, cmd = m.paymentView.Update(msg)
		m.paymentView = newModel.(view.PaymentModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Dukon TUI\n\n" +
				"1. Debt Dashboard\n" +
				"2. Kassa\n" +
				"3. Transactions\n" +
				"4. Record Payment\n" +
				"5. Export Report\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewKassa:
		return m.kassaView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewPayment:
		return m.paymentView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
