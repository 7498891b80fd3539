package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

func TestParseType(t *testing.T) {
	for input, want := range map[string]transaction.Type{
		"Entrada":  transaction.TypePositive,
		" SAÍDA ":  transaction.TypeNegative,
		"saida":    transaction.TypeNegative,
		"positive": transaction.TypePositive,
	} {
		got, err := parseType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseType("transfer")
	assert.ErrorIs(t, err, errInvalidType)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"02/04/2024", "02/04/24", "2024-04-02"} {
		got, err := parseDate(input)
		require.NoError(t, err, input)
		assert.True(t, got.Equal(want), input)
	}

	_, err := parseDate("04/31/2024")
	assert.ErrorIs(t, err, errInvalidDate)
}
