package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otabekj/dukon/internal/report"
)

type debtTab int

const (
	debtTabClients debtTab = iota
	debtTabSuppliers
	debtTabEmployees
)

// DashboardModel shows who owes what: client balances, supplier balances
// and employee advances, switchable with tab.
type DashboardModel struct {
	CommonModel
	reportService *report.Service

	tab   debtTab
	table table.Model

	clients   []report.ClientDebt
	suppliers []report.SupplierDebt
	employees []report.EmployeeDebt

	loading bool
	err     error
}

func NewDashboardModel(svc *report.Service) DashboardModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		reportService: svc,
		table:         t,
		loading:       true,
	}
}

func (m DashboardModel) Title() string { return "Debt Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | tab: switch | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.clients = msg.clients
		m.suppliers = msg.suppliers
		m.employees = msg.employees
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "tab":
			m.tab = (m.tab + 1) % 3
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading balances...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorText(m.err))
	}

	labels := []string{"Clients", "Suppliers", "Employees"}
	header := "Debts: "
	for i, label := range labels {
		if debtTab(i) == m.tab {
			header += lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("[" + label + "]")
		} else {
			header += " " + label + " "
		}
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func (m *DashboardModel) refreshTable() {
	switch m.tab {
	case debtTabClients:
		m.table.SetColumns([]table.Column{
			{Title: "Name", Width: 25},
			{Title: "Sales", Width: 18},
			{Title: "Payments", Width: 18},
			{Title: "Balance", Width: 18},
		})

		rows := make([]table.Row, 0, len(m.clients))
		for _, d := range m.clients {
			rows = append(rows, table.Row{
				d.Name,
				FormatAmount(d.TotalSales),
				FormatAmount(d.TotalPayments),
				FormatAmount(d.Balance),
			})
		}
		m.table.SetRows(rows)

	case debtTabSuppliers:
		m.table.SetColumns([]table.Column{
			{Title: "Name", Width: 25},
			{Title: "Type", Width: 10},
			{Title: "Purchases", Width: 18},
			{Title: "Payments", Width: 18},
			{Title: "Balance", Width: 18},
		})

		rows := make([]table.Row, 0, len(m.suppliers))
		for _, d := range m.suppliers {
			rows = append(rows, table.Row{
				d.Name,
				string(d.Type),
				FormatAmount(d.TotalPurchases),
				FormatAmount(d.TotalPayments),
				FormatAmount(d.Balance),
			})
		}
		m.table.SetRows(rows)

	case debtTabEmployees:
		m.table.SetColumns([]table.Column{
			{Title: "Name", Width: 25},
			{Title: "Position", Width: 18},
			{Title: "Advances", Width: 18},
		})

		rows := make([]table.Row, 0, len(m.employees))
		for _, d := range m.employees {
			rows = append(rows, table.Row{
				d.Name,
				d.Position,
				FormatAmount(d.TotalAdvances),
			})
		}
		m.table.SetRows(rows)
	}
}

type dashboardLoadedMsg struct {
	clients   []report.ClientDebt
	suppliers []report.SupplierDebt
	employees []report.EmployeeDebt
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.reportService.Dashboard(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		suppliers, err := m.reportService.SupplierDebts(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		employees, err := m.reportService.EmployeeDebts(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{
			clients:   clients,
			suppliers: suppliers,
			employees: employees,
		}
	}
}
