package domain

import "time"

type Cart struct {
	ID        string
	CreatedAt time.Time
	Items     []CartItem
}

// CartItem is one cart row. ProductID may point at a variant row; the
// tagging pipeline resolves the parent product in that case.
type CartItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice float64
}
