package transaction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
)

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypePositive Type = "positive"
	TypeNegative Type = "negative"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	switch t {
	case TypePositive, TypeNegative:
		return true
	}

	return false
}

// UnmarshalJSON rejects unknown types so they never leave the decoding boundary.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if !Type(s).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, s)
	}

	*t = Type(s)

	return nil
}

// Transaction is a single stored income or expense.
// The sign lives in Type; Amount is always a magnitude.
type Transaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     Type            `json:"type"`
	Category category.Key    `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
}

// IsIncome reports whether the transaction is an entry.
func (t Transaction) IsIncome() bool {
	return t.Type == TypePositive
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeNegative
}
