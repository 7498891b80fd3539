package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountTyped is an unsigned "Valor" column plus a "Tipo" column.
	amountTyped amountMode = iota
	// amountSigned is one signed column, e.g. "-20,00" for an expense.
	amountSigned
	// amountSplit is separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV export.
type Profile struct {
	Name        string
	NameCol     string
	DateCol     string
	CategoryCol string // optional; rows fall back to learned mappings
	AmountMode  amountMode
	AmountCol   string // amountTyped and amountSigned
	TypeCol     string // amountTyped
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.NameCol, p.DateCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.AmountCol, p.TypeCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "gofinances",
		NameCol:     "Nome",
		DateCol:     "Data",
		CategoryCol: "Categoria",
		AmountMode:  amountTyped,
		AmountCol:   "Valor",
		TypeCol:     "Tipo",
	},
	{
		Name:       "fatura",
		NameCol:    "Descrição",
		DateCol:    "Data",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "extrato",
		NameCol:    "Descrição",
		DateCol:    "Data",
		AmountMode: amountSigned,
		AmountCol:  "Valor",
	},
}
