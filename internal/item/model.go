package item

import "github.com/shopspring/decimal"

// Item types as stored in Items.typeOfItem.
const (
	TypeEntree = "entree"
	TypeSides  = "sides"
	TypeDrinks = "drinks"
)

// Editable Items columns. Like user fields, these end up in SET clauses
// and so are restricted to a closed set.
const (
	FieldIngredients = "ingredients"
	FieldType        = "typeOfItem"
	FieldPrice       = "price"
	FieldDescription = "description"
)

type Item struct {
	Name        string
	Ingredients string
	Type        string
	Price       decimal.Decimal
	Description string
}

// Filter selects one dimension at a time: by type, or by price ceiling,
// or neither. The menu offers them as alternatives, not a conjunction.
type Filter struct {
	Type     string
	MaxPrice *decimal.Decimal
}

type Sort int

const (
	SortNone Sort = iota
	SortPriceDesc
	SortPriceAsc
)
