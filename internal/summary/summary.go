// Package summary turns a user's stored transactions into the dashboard
// highlights and the month-scoped category breakdown.
//
// Every function here is pure: inputs are read, never reordered or modified,
// and nothing is kept between calls.
package summary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// NoTransactions is the empty-state text used when a bucket has no qualifying transaction.
const NoTransactions = "Não há transações"

// Highlight is one dashboard card.
type Highlight struct {
	Amount          string `json:"amount"`
	LastTransaction string `json:"lastTransaction"`
	// Empty is set when LastTransaction holds the NoTransactions sentinel.
	Empty bool `json:"empty"`
}

// Totals are the numeric values behind the highlight cards.
type Totals struct {
	Entries  decimal.Decimal `json:"entries"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type HighlightResult struct {
	Entries  Highlight `json:"entries"`
	Expenses Highlight `json:"expenses"`
	Total    Highlight `json:"total"`
	Totals   Totals    `json:"totals"`
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Key            category.Key    `json:"key"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Percent        string          `json:"percent"`
}

type Engine struct {
	format *format.Formatter
}

func NewEngine(f *format.Formatter) *Engine {
	if f == nil {
		f = format.Default
	}

	return &Engine{format: f}
}

// Label renders p with the engine's formatter.
func (e *Engine) Label(p Period) string {
	return e.format.MonthYear(p.Month, p.Year)
}

// partition collects the sum and most recent date of one transaction type.
type partition struct {
	total decimal.Decimal
	last  time.Time
	found bool
}

func (p *partition) add(tx transaction.Transaction) {
	p.total = p.total.Add(tx.Amount)

	// Ties go to the later element in storage order.
	if !p.found || !tx.Date.Before(p.last) {
		p.last = tx.Date
	}

	p.found = true
}

// Highlights computes the entries, expenses and total cards over every transaction.
func (e *Engine) Highlights(txs []transaction.Transaction) HighlightResult {
	var entries, expenses partition

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypePositive:
			entries.add(tx)
		case transaction.TypeNegative:
			expenses.add(tx)
		}
	}

	net := entries.total.Sub(expenses.total)

	return HighlightResult{
		Entries: Highlight{
			Amount:          e.format.Currency(entries.total),
			LastTransaction: e.lastDescription(entries, "Última entrada dia %s"),
			Empty:           !entries.found,
		},
		Expenses: Highlight{
			Amount:          e.format.Currency(expenses.total),
			LastTransaction: e.lastDescription(expenses, "Última saída dia %s"),
			Empty:           !expenses.found,
		},
		Total: Highlight{
			Amount:          e.format.Currency(net),
			LastTransaction: e.lastDescription(expenses, "01 a %s"),
			Empty:           !expenses.found,
		},
		Totals: Totals{
			Entries:  entries.total,
			Expenses: expenses.total,
			Net:      net,
		},
	}
}

func (e *Engine) lastDescription(p partition, layout string) string {
	if !p.found {
		return NoTransactions
	}

	return fmt.Sprintf(layout, e.format.DayMonth(p.last))
}

// CategoryBreakdown sums the period's expenses per category in taxonomy order.
//
// Categories without expenses are omitted. Expenses whose category is not in
// the taxonomy still count toward the period total used for percentages, but
// belong to no row. A period without expenses yields an empty slice.
func (e *Engine) CategoryBreakdown(txs []transaction.Transaction, period Period, taxonomy []category.Category) []CategoryTotal {
	periodTotal := decimal.Zero
	byKey := make(map[category.Key]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != transaction.TypeNegative || !period.Contains(tx.Date) {
			continue
		}

		periodTotal = periodTotal.Add(tx.Amount)
		byKey[tx.Category] = byKey[tx.Category].Add(tx.Amount)
	}

	out := []CategoryTotal{}

	if !periodTotal.IsPositive() {
		return out
	}

	hundred := decimal.NewFromInt(100)

	for _, c := range taxonomy {
		sum, ok := byKey[c.Key]
		if !ok || !sum.IsPositive() {
			continue
		}

		percent := sum.Mul(hundred).Div(periodTotal).Round(0).IntPart()

		out = append(out, CategoryTotal{
			Key:            c.Key,
			Name:           c.Name,
			Color:          c.Color,
			Total:          sum,
			TotalFormatted: e.format.Currency(sum),
			Percent:        e.format.Percent(percent),
		})
	}

	return out
}
