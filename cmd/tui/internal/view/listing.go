package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// ListingModel shows the highlight cards and the transaction list.
type ListingModel struct {
	svc    *dashboard.Service
	userID string

	table   table.Model
	snap    *dashboard.Snapshot
	applied uint64
	loading bool
	err     error
}

func NewListingModel(svc *dashboard.Service, userID string) ListingModel {
	columns := []table.Column{
		{Title: "Nome", Width: 30},
		{Title: "Valor", Width: 16},
		{Title: "Categoria", Width: 14},
		{Title: "Data", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("#5636D3")).
		Bold(false)
	t.SetStyles(s)

	return ListingModel{svc: svc, userID: userID, table: t, loading: true}
}

func (m ListingModel) Title() string     { return "Listagem" }
func (m ListingModel) ShortHelp() string { return "Esc: voltar | r: recarregar" }

func (m ListingModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		return m.apply(msg), nil
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-16, 5))
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

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// apply installs a loaded snapshot or load failure unless a newer outcome
// was already shown.
func (m ListingModel) apply(msg snapshotMsg) ListingModel {
	seq := dashboard.SeqOf(msg.err)
	if msg.snap != nil {
		seq = msg.snap.Seq
	}

	if seq <= m.applied {
		return m
	}

	m.applied = seq
	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		return m
	}

	m.err = nil
	m.snap = msg.snap
	m.table.SetRows(transactionRows(msg.snap.Transactions))

	return m
}

func transactionRows(txs []transaction.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(txs))

	for _, tx := range txs {
		amount := tx.Amount
		if tx.IsExpense() {
			amount = amount.Neg()
		}

		name := string(tx.Category)
		if c, ok := category.Lookup(tx.Category); ok {
			name = c.Name
		}

		rows = append(rows, table.Row{
			tx.Name,
			format.Default.Currency(amount),
			name,
			format.Default.ShortDate(tx.Date),
		})
	}

	return rows
}

func (m ListingModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	if m.snap == nil {
		return lipgloss.NewStyle().Padding(2).Render("Carregando...")
	}

	h := m.snap.Highlights
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Entradas", h.Entries, "#12A454"),
		card("Saídas", h.Expenses, "#E83F5B"),
		card("Total", h.Total, "#5636D3"),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left, cards, "", "Listagem", tableView)
	if m.loading {
		content = faintStyle.Render("Atualizando...") + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func card(title string, h summary.Highlight, color string) string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1).
		Width(30).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%s\n\n%s\n%s",
			title,
			lipgloss.NewStyle().Bold(true).Render(h.Amount),
			faintStyle.Render(h.LastTransaction),
		))
}

type snapshotMsg struct {
	snap *dashboard.Snapshot
	err  error
}

func (m ListingModel) loadCmd() tea.Cmd {
	svc, userID := m.svc, m.userID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := svc.Load(ctx, userID)

		return snapshotMsg{snap: snap, err: err}
	}
}
