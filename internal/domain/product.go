package domain

import "time"

// Product is a catalog product row. Variant rows reference their parent
// product through ParentID; top-level products have ParentID == 0.
type Product struct {
	ID            int64
	ParentID      int64
	Slug          string
	Name          string
	Permalink     string
	ImageURL      string
	Description   string
	PublishedAt   time.Time
	InStock       bool
	HasVariations bool
	Price         float64
	SpecialPrice  float64
}

// VariationPrice holds the regular and special price columns of one
// variant row under a parent product.
type VariationPrice struct {
	Price        float64
	SpecialPrice float64
}
