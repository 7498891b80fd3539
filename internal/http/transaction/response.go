package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// Response is a transaction as shown in the listing, with display fields.
type Response struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            transaction.Type `json:"type"`
	Category        category.Key     `json:"category"`
	CategoryName    string           `json:"categoryName,omitempty"`
	CategoryIcon    string           `json:"categoryIcon,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	AmountFormatted string           `json:"amountFormatted"`
	Date            time.Time        `json:"date"`
	DateFormatted   string           `json:"dateFormatted"`
}

func ToResponse(tx transaction.Transaction) Response {
	resp := Response{
		ID:              tx.ID,
		Name:            tx.Name,
		Type:            tx.Type,
		Category:        tx.Category,
		Amount:          tx.Amount,
		AmountFormatted: format.Default.Currency(tx.Amount),
		Date:            tx.Date,
		DateFormatted:   format.Default.ShortDate(tx.Date),
	}

	if tx.IsExpense() {
		resp.AmountFormatted = format.Default.Currency(tx.Amount.Neg())
	}

	if c, ok := category.Lookup(tx.Category); ok {
		resp.CategoryName = c.Name
		resp.CategoryIcon = c.Icon
	}

	return resp
}

func ToResponseList(txs []transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
