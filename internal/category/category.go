package category

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key identifies a spending category in the taxonomy.
type Key string

const (
	KeyPurchases Key = "purchases"
	KeyFood      Key = "food"
	KeySalary    Key = "salary"
	KeyCar       Key = "car"
	KeyLeisure   Key = "leisure"
	KeyStudies   Key = "studies"
)

// Category is a static taxonomy entry.
// Color doubles as the chart colour scale entry, so taxonomy order matters.
type Category struct {
	Key   Key    `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var taxonomy = []Category{
	{Key: KeyPurchases, Name: "Compras", Icon: "shopping-bag", Color: "#5636D3"},
	{Key: KeyFood, Name: "Alimentação", Icon: "coffee", Color: "#FF872C"},
	{Key: KeySalary, Name: "Salário", Icon: "dollar-sign", Color: "#12A454"},
	{Key: KeyCar, Name: "Carro", Icon: "crosshair", Color: "#E83F5B"},
	{Key: KeyLeisure, Name: "Lazer", Icon: "heart", Color: "#26195C"},
	{Key: KeyStudies, Name: "Estudos", Icon: "book", Color: "#9C001A"},
}

// All returns the taxonomy in its defined order.
// The returned slice is a copy and may be modified by the caller.
func All() []Category {
	out := make([]Category, len(taxonomy))
	copy(out, taxonomy)

	return out
}

// Lookup finds the taxonomy entry for key.
func Lookup(key Key) (Category, bool) {
	for _, c := range taxonomy {
		if c.Key == key {
			return c, true
		}
	}

	return Category{}, false
}

// ByName finds a category by its display name, ignoring case.
func ByName(name string) (Category, bool) {
	for _, c := range taxonomy {
		if equalFold(c.Name, name) || equalFold(string(c.Key), name) {
			return c, true
		}
	}

	return Category{}, false
}

// Known reports whether key is part of the taxonomy.
func (k Key) Known() bool {
	_, ok := Lookup(k)
	return ok
}

// A Caser is stateful, so each comparison gets its own.
func equalFold(a, b string) bool {
	folder := cases.Fold()
	return folder.String(strings.TrimSpace(a)) == folder.String(strings.TrimSpace(b))
}
