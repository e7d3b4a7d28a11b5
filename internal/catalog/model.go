package catalog

import "github.com/shopspring/decimal"

type Category struct {
	CategoryID  string
	Name        string
	Description string
	BgColor     string
	ImageURL    string
	Items       int
}

type Item struct {
	ItemID      string
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	ImageURL    string
}
