package importer

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

var (
	errInvalidType = errors.New("invalid type")
	errInvalidDate = errors.New("invalid date")
)

var dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

var typeNames = map[string]transaction.Type{
	"entrada":  transaction.TypePositive,
	"positive": transaction.TypePositive,
	"income":   transaction.TypePositive,
	"saída":    transaction.TypeNegative,
	"saida":    transaction.TypeNegative,
	"negative": transaction.TypeNegative,
	"outcome":  transaction.TypeNegative,
}

func parseType(s string) (transaction.Type, error) {
	t, ok := typeNames[fold(s)]
	if !ok {
		return "", errInvalidType
	}

	return t, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errInvalidDate
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
