package summary

import (
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/format"
)

// Period is the (month, year) pair selected for the category breakdown.
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// PeriodOf returns the period containing t, in t's own location.
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// Next returns the following calendar month.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Month: time.January, Year: p.Year + 1}
	}

	return Period{Month: p.Month + 1, Year: p.Year}
}

// Prev returns the preceding calendar month.
func (p Period) Prev() Period {
	if p.Month == time.January {
		return Period{Month: time.December, Year: p.Year - 1}
	}

	return Period{Month: p.Month - 1, Year: p.Year}
}

// Contains reports whether t falls in the period.
func (p Period) Contains(t time.Time) bool {
	return t.Month() == p.Month && t.Year() == p.Year
}

// Valid reports whether the month is a real calendar month.
func (p Period) Valid() bool {
	return p.Month >= time.January && p.Month <= time.December
}

// Label renders the period as "abril, 2024" with format.Default. Use
// Engine.Label when the formatter is configured.
func (p Period) Label() string {
	return format.Default.MonthYear(p.Month, p.Year)
}
