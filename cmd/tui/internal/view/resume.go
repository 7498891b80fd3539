package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

// ResumeModel is the "Resumo por categoria" screen.
type ResumeModel struct {
	svc    *dashboard.Service
	userID string

	period  summary.Period
	res     *dashboard.Resume
	applied uint64
	loading bool
	err     error
}

func NewResumeModel(svc *dashboard.Service, userID string, now time.Time) ResumeModel {
	return ResumeModel{
		svc:     svc,
		userID:  userID,
		period:  summary.PeriodOf(now),
		loading: true,
	}
}

func (m ResumeModel) Title() string     { return "Resumo por categoria" }
func (m ResumeModel) ShortHelp() string { return "←/→: mês | Esc: voltar" }

func (m ResumeModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ResumeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resumeMsg:
		return m.apply(msg), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.period = m.period.Prev()
			m.loading = true

			return m, m.loadCmd()
		case "right", "l":
			m.period = m.period.Next()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

// apply shows a loaded breakdown or load failure unless a newer outcome was
// already shown or the user has since moved to another month.
func (m ResumeModel) apply(msg resumeMsg) ResumeModel {
	seq := dashboard.SeqOf(msg.err)
	if msg.res != nil {
		seq = msg.res.Seq
	}

	if seq <= m.applied {
		return m
	}

	m.applied = seq

	if msg.period != m.period {
		return m
	}

	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		return m
	}

	m.err = nil
	m.res = msg.res

	return m
}

func (m ResumeModel) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Resumo por categoria"),
		"",
		fmt.Sprintf("‹  %s  ›", lipgloss.NewStyle().Bold(true).Render(m.period.Label())),
		"",
	)

	var body string

	switch {
	case m.err != nil:
		body = errorStyle.Render(fmt.Sprintf("Erro: %v", m.err))
	case m.res == nil || m.loading:
		body = "Carregando..."
	case len(m.res.Categories) == 0:
		body = faintStyle.Render("Nenhuma saída neste mês.")
	default:
		body = m.renderCategories()
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(header + body)
}

func (m ResumeModel) renderCategories() string {
	var sb strings.Builder

	for _, c := range m.res.Categories {
		row := lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(c.Color)).
			PaddingLeft(1).
			Width(44).
			Render(fmt.Sprintf("%-18s %14s %5s", c.Name, c.TotalFormatted, c.Percent))

		sb.WriteString(row)
		sb.WriteString("\n")
	}

	return sb.String()
}

type resumeMsg struct {
	period summary.Period
	res    *dashboard.Resume
	err    error
}

func (m ResumeModel) loadCmd() tea.Cmd {
	svc, userID, period := m.svc, m.userID, m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := svc.Resume(ctx, userID, period)

		return resumeMsg{period: period, res: res, err: err}
	}
}
