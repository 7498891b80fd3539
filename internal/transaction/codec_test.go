package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

func TestDecode_StoredBlob(t *testing.T) {
	blob := `[
		{"id":"1","name":"Desenvolvimento de site","type":"positive","category":"salary","amount":"12000","date":"2024-04-13T10:00:00.000Z"},
		{"id":"2","name":"Hamburgueria Pizzy","type":"negative","category":"food","amount":59.5,"date":"2024-04-10T10:00:00.000Z"}
	]`

	txs, err := transaction.Decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, transaction.TypePositive, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, category.KeyFood, txs[1].Category)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("59.5")))
	assert.Equal(t, time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC), txs[1].Date.UTC())
}

func TestDecode_Empty(t *testing.T) {
	for _, blob := range []string{"", "  ", "null", "[]"} {
		txs, err := transaction.Decode([]byte(blob))
		require.NoError(t, err, blob)
		assert.NotNil(t, txs, blob)
		assert.Empty(t, txs, blob)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"unknown type":    `[{"id":"1","name":"x","type":"up","category":"food","amount":"1","date":"2024-04-10T10:00:00Z"}]`,
		"missing type":    `[{"id":"1","name":"x","category":"food","amount":"1","date":"2024-04-10T10:00:00Z"}]`,
		"negative amount": `[{"id":"1","name":"x","type":"negative","category":"food","amount":"-1","date":"2024-04-10T10:00:00Z"}]`,
		"missing id":      `[{"name":"x","type":"negative","category":"food","amount":"1","date":"2024-04-10T10:00:00Z"}]`,
		"bad amount":      `[{"id":"1","name":"x","type":"negative","category":"food","amount":"abc","date":"2024-04-10T10:00:00Z"}]`,
	}

	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := transaction.Decode([]byte(blob))
			assert.ErrorIs(t, err, transaction.ErrMalformedData)
		})
	}
}

func TestEncode_KeepsOrder(t *testing.T) {
	txs := []transaction.Transaction{
		{ID: "b", Name: "Salário", Type: transaction.TypePositive, Category: category.KeySalary, Amount: decimal.NewFromInt(10), Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a", Name: "Lanche", Type: transaction.TypeNegative, Category: category.KeyFood, Amount: decimal.NewFromInt(2), Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	}

	data, err := transaction.Encode(txs)
	require.NoError(t, err)

	got, err := transaction.Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	empty, err := transaction.Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}
