package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

var header = []string{"Nome", "Valor", "Tipo", "Categoria", "Data"}

type Lister interface {
	List(ctx context.Context, userID string) ([]transaction.Transaction, error)
}

// Service writes a user's transactions as CSV in the layout the importer reads back.
type Service struct {
	transactions Lister
	format       *format.Formatter
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions, format: format.Default}
}

// Export writes the user's transactions in storage order, restricted to period
// when it is not nil, and returns how many rows were written.
func (s *Service) Export(ctx context.Context, userID string, period *summary.Period, w io.Writer) (int, error) {
	txs, err := s.selectTransactions(ctx, userID, period)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	written := 0

	for _, tx := range txs {
		if err := cw.Write(s.row(tx)); err != nil {
			return written, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}

		written++
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("flushing csv: %w", err)
	}

	return written, nil
}

func (s *Service) selectTransactions(ctx context.Context, userID string, period *summary.Period) ([]transaction.Transaction, error) {
	txs, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if period == nil {
		return txs, nil
	}

	selected := make([]transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if period.Contains(tx.Date) {
			selected = append(selected, tx)
		}
	}

	return selected, nil
}

func (s *Service) row(tx transaction.Transaction) []string {
	kind := "Entrada"
	if tx.IsExpense() {
		kind = "Saída"
	}

	name := string(tx.Category)
	if c, ok := category.Lookup(tx.Category); ok {
		name = c.Name
	}

	return []string{
		tx.Name,
		s.format.Number(tx.Amount),
		kind,
		name,
		tx.Date.Format("02/01/2006"),
	}
}

// Filename names the download for an export, e.g. "gofinances_2024-04.csv".
func Filename(period *summary.Period) string {
	if period == nil {
		return "gofinances.csv"
	}

	return fmt.Sprintf("gofinances_%04d-%02d.csv", period.Year, int(period.Month))
}

// Text renders the selected transactions, most recent first, one line each.
func (s *Service) Text(ctx context.Context, userID string, period *summary.Period) (string, error) {
	txs, err := s.selectTransactions(ctx, userID, period)
	if err != nil {
		return "", err
	}

	return s.Summary(transaction.MostRecentFirst(txs)), nil
}

// Summary renders one line per transaction for sharing as plain text.
func (s *Service) Summary(txs []transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		amount := tx.Amount
		if tx.IsExpense() {
			amount = amount.Neg()
		}

		row := s.row(tx)
		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s\n", row[4], tx.Name, s.format.Currency(amount), row[3]))
	}

	return sb.String()
}
