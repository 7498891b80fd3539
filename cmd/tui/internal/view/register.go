package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// Learner remembers the category picked for a transaction name.
type Learner interface {
	Learn(ctx context.Context, userID, rawPattern string, key category.Key) error
}

// RegisterModel is the "Cadastrar" form.
type RegisterModel struct {
	txService *transaction.Service
	learner   Learner
	userID    string

	form   *huh.Form
	fields *registerFields
	saving bool
	status string
	err    error
}

// registerFields is shared by pointer so huh bindings survive model copies.
type registerFields struct {
	name     string
	amount   string
	txType   transaction.Type
	category category.Key
}

func NewRegisterModel(txSvc *transaction.Service, learner Learner, userID string) RegisterModel {
	m := RegisterModel{
		txService: txSvc,
		learner:   learner,
		userID:    userID,
		fields:    &registerFields{txType: transaction.TypePositive},
	}
	m.form = newRegisterForm(m.fields)

	return m
}

func newRegisterForm(f *registerFields) *huh.Form {
	categories := make([]huh.Option[category.Key], 0, len(category.All()))
	for _, c := range category.All() {
		categories = append(categories, huh.NewOption(c.Name, c.Key))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nome").
				Value(&f.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return transaction.ErrEmptyName
					}

					return nil
				}),

			huh.NewInput().
				Title("Preço").
				Placeholder("0,00").
				Value(&f.amount).
				Validate(validateAmount),

			huh.NewSelect[transaction.Type]().
				Title("Tipo").
				Options(
					huh.NewOption("Income", transaction.TypePositive),
					huh.NewOption("Outcome", transaction.TypeNegative),
				).
				Value(&f.txType),

			huh.NewSelect[category.Key]().
				Title("Categoria").
				Options(categories...).
				Value(&f.category),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	amount, err := format.ParseAmount(s)
	if err != nil {
		return err
	}

	if !amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func (m RegisterModel) Title() string     { return "Cadastrar" }
func (m RegisterModel) ShortHelp() string { return "Tab: próximo campo | Enter: enviar | Esc: voltar" }

func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.saving = false
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Não foi possível salvar: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("%s cadastrado.", msg.tx.Name)
		m.fields = &registerFields{txType: transaction.TypePositive}
		m.form = newRegisterForm(m.fields)

		return m, m.form.Init()
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true
	m.status = "Salvando..."

	return m, m.saveCmd()
}

func (m RegisterModel) View() string {
	status := ""

	switch {
	case m.err != nil:
		status = errorStyle.Render(m.status)
	case m.status != "":
		status = successStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Cadastro"), "", m.form.View(), "", status),
	)
}

type registerResultMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m RegisterModel) saveCmd() tea.Cmd {
	f := *m.fields
	svc, learner, userID := m.txService, m.learner, m.userID

	return func() tea.Msg {
		amount, err := format.ParseAmount(f.amount)
		if err != nil {
			return registerResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := svc.Register(ctx, userID, transaction.RegisterParams{
			Name:     f.name,
			Amount:   amount,
			Type:     f.txType,
			Category: f.category,
		})
		if err != nil {
			return registerResultMsg{err: err}
		}

		if learner != nil {
			if err := learner.Learn(ctx, userID, tx.Name, tx.Category); err != nil {
				slog.Warn("failed to learn category mapping", "name", tx.Name, "error", err)
			}
		}

		return registerResultMsg{tx: tx}
	}
}
