package domain

import "time"

// PurchaseLog is the persisted record of a finalized checkout.
type PurchaseLog struct {
	ID        int64
	CreatedAt time.Time
}

// PurchasedItem is one line of a purchase log's cart contents.
type PurchasedItem struct {
	ProductID int64
	Name      string
	Quantity  int
	Price     float64
}

// GatewayData is the payment-gateway breakdown attached to a purchase log.
// Amounts are zero when the gateway did not report them.
type GatewayData struct {
	Tax      float64
	Shipping float64
	Discount float64
}
