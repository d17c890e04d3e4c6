package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otabekj/dukon/internal/report"
)

// KassaModel shows the cash position: all-time totals next to today's.
type KassaModel struct {
	CommonModel
	reportService *report.Service

	summary *report.Summary
	today   *report.TodaySummary

	loading bool
	err     error
}

func NewKassaModel(svc *report.Service) KassaModel {
	return KassaModel{
		reportService: svc,
		loading:       true,
	}
}

func (m KassaModel) Title() string { return "Kassa" }

func (m KassaModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m KassaModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m KassaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kassaLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.summary = msg.summary
		m.today = msg.today

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m KassaModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading kassa...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorText(m.err))
	}

	header := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	total := lipgloss.JoinVertical(lipgloss.Left,
		header.Render("All Time"),
		"",
		"Cash In:  "+green.Render(FormatAmount(m.summary.TotalCashIn)),
		"Cash Out: "+red.Render(FormatAmount(m.summary.TotalCashOut)),
		"Kassa:    "+FormatAmount(m.summary.Kassa),
	)

	today := lipgloss.JoinVertical(lipgloss.Left,
		header.Render("Today"),
		"",
		"Cash In:  "+green.Render(FormatAmount(m.today.TodayCashIn)),
		"Cash Out: "+red.Render(FormatAmount(m.today.TodayCashOut)),
		"Kassa:    "+FormatAmount(m.today.TodayKassa),
	)

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(total), " ", panel.Render(today)),
	)
}

type kassaLoadedMsg struct {
	summary *report.Summary
	today   *report.TodaySummary
	err     error
}

func (m KassaModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.FinancialSummary(ctx)
		if err != nil {
			return kassaLoadedMsg{err: err}
		}

		today, err := m.reportService.TodaysFinancialSummary(ctx)
		if err != nil {
			return kassaLoadedMsg{err: err}
		}

		return kassaLoadedMsg{summary: summary, today: today}
	}
}
