package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	enc "github.com/MrJamesThe3rd/gofinances/internal/encoding"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching CSV format found: expected columns for gofinances, fatura or extrato")

type Registrar interface {
	RegisterBatch(ctx context.Context, userID string, params []transaction.RegisterParams) ([]transaction.Transaction, error)
}

type Suggester interface {
	Suggest(ctx context.Context, userID, name string) (category.Key, error)
}

// Skipped is a data row that was not imported.
type Skipped struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Result struct {
	Profile  string                    `json:"profile"`
	Imported []transaction.Transaction `json:"imported"`
	Skipped  []Skipped                 `json:"skipped"`
}

type Service struct {
	registrar Registrar
	suggester Suggester
}

func NewService(registrar Registrar, suggester Suggester) *Service {
	return &Service{registrar: registrar, suggester: suggester}
}

// Import parses r and registers every row whose category could be resolved.
func (s *Service) Import(ctx context.Context, userID string, r io.Reader) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	result := &Result{
		Profile:  profile.Name,
		Imported: []transaction.Transaction{},
		Skipped:  []Skipped{},
	}

	var params []transaction.RegisterParams

	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2

		p, skip, err := s.parseRow(ctx, userID, profile, cols, row)
		if err != nil {
			return nil, err
		}

		switch {
		case skip == "":
			params = append(params, p)
		case skip != skipBlank:
			result.Skipped = append(result.Skipped, Skipped{Line: line, Name: p.Name, Reason: skip})
		}
	}

	if len(params) == 0 {
		return result, nil
	}

	txs, err := s.registrar.RegisterBatch(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("registering imported transactions: %w", err)
	}

	result.Imported = txs

	return result, nil
}

const skipBlank = "blank"

// parseRow returns a non-empty skip reason for rows that cannot be imported.
// Errors are reserved for failures of the category suggester.
func (s *Service) parseRow(ctx context.Context, userID string, p *Profile, cols colIndex, row []string) (transaction.RegisterParams, string, error) {
	var params transaction.RegisterParams

	params.Name = cols.cell(row, p.NameCol)
	dateStr := cols.cell(row, p.DateCol)

	if params.Name == "" && dateStr == "" {
		return params, skipBlank, nil
	}

	if params.Name == "" {
		return params, "missing name", nil
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return params, err.Error(), nil
	}

	params.Date = date

	amount, typ, err := readAmount(p, cols, row)
	if err != nil {
		return params, err.Error(), nil
	}

	params.Amount = amount
	params.Type = typ

	key, err := s.resolveCategory(ctx, userID, cols.cell(row, p.CategoryCol), params.Name)
	if err != nil {
		return params, "", err
	}

	if key == "" {
		return params, "unknown category", nil
	}

	params.Category = key

	if err := params.Validate(); err != nil {
		return params, err.Error(), nil
	}

	return params, "", nil
}

func (s *Service) resolveCategory(ctx context.Context, userID, cell, name string) (category.Key, error) {
	if cell != "" {
		if c, ok := category.ByName(cell); ok {
			return c.Key, nil
		}
	}

	if s.suggester == nil {
		return "", nil
	}

	key, err := s.suggester.Suggest(ctx, userID, name)
	if err != nil {
		return "", fmt.Errorf("suggesting category for %q: %w", name, err)
	}

	return key, nil
}

func readAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, transaction.Type, error) {
	switch p.AmountMode {
	case amountTyped:
		amount, err := format.ParseAmount(cols.cell(row, p.AmountCol))
		if err != nil {
			return decimal.Zero, "", err
		}

		typ, err := parseType(cols.cell(row, p.TypeCol))
		if err != nil {
			return decimal.Zero, "", err
		}

		return amount.Abs(), typ, nil
	case amountSigned:
		amount, err := format.ParseAmount(cols.cell(row, p.AmountCol))
		if err != nil {
			return decimal.Zero, "", err
		}

		return signed(amount)
	case amountSplit:
		if s := cols.cell(row, p.DebitCol); s != "" {
			amount, err := format.ParseAmount(s)
			if err == nil && !amount.IsZero() {
				return amount.Abs(), transaction.TypeNegative, nil
			}
		}

		amount, err := format.ParseAmount(cols.cell(row, p.CreditCol))
		if err != nil {
			return decimal.Zero, "", err
		}

		return amount.Abs(), transaction.TypePositive, nil
	}

	return decimal.Zero, "", format.ErrInvalidAmount
}

func signed(amount decimal.Decimal) (decimal.Decimal, transaction.Type, error) {
	if amount.IsNegative() {
		return amount.Neg(), transaction.TypeNegative, nil
	}

	return amount, transaction.TypePositive, nil
}

// colIndex maps folded column names to their index in the row.
type colIndex map[string]int

func (c colIndex) cell(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[fold(name)]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := fold(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[fold(name)]; !ok {
			return false
		}
	}

	return true
}
