// Package format renders amounts and dates for display.
//
// Everything is fixed to Brazilian Portuguese and the Brazilian real. The
// rendering functions are total over any representable input; ParseAmount
// reads amounts typed or exported in the same notation.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Formatter renders values for a single locale and currency.
type Formatter struct {
	symbol string
}

// Default is the pt-BR / BRL formatter shared by the app.
var Default = New(language.BrazilianPortuguese, currency.BRL)

func New(tag language.Tag, unit currency.Unit) *Formatter {
	p := message.NewPrinter(tag)
	return &Formatter{symbol: p.Sprint(currency.Symbol(unit))}
}

// Currency renders an amount as "R$ 1.234,56". Negative values get a leading minus.
func (f *Formatter) Currency(amount decimal.Decimal) string {
	value := amount.Round(2)

	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	return fmt.Sprintf("%s%s %s", sign, f.symbol, f.Number(value))
}

// Number renders an amount with two decimals and no currency symbol, e.g. "1.234,56".
// The digits come from the decimal itself, so no precision is lost on large values.
func (f *Formatter) Number(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	if strings.Trim(intPart, "0") == "" && strings.Trim(frac, "0") == "" {
		sign = ""
	}

	return sign + groupThousands(intPart) + "," + frac
}

func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])

	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// ShortDate renders a date as "dd/mm/yy".
func (f *Formatter) ShortDate(t time.Time) string {
	return t.Format("02/01/06")
}

// DayMonth renders a date as "02 de abril".
func (f *Formatter) DayMonth(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), MonthName(t.Month()))
}

// MonthYear renders a period label such as "abril, 2024".
func (f *Formatter) MonthYear(month time.Month, year int) string {
	return fmt.Sprintf("%s, %d", MonthName(month), year)
}

// Percent renders a whole percentage such as "40%".
func (f *Formatter) Percent(p int64) string {
	return fmt.Sprintf("%d%%", p)
}

// MonthName returns the lowercase Portuguese month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return strings.ToLower(m.String())
	}

	return monthNames[m-1]
}

// ErrInvalidAmount is returned by ParseAmount for text that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount reads a pt-BR amount such as "R$ 1.234,56", "-20,00" or "10".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "R$", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	if clean == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	return d.Round(2), nil
}
