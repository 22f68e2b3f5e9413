package tagging

// PageContext identifies one tagging context active in a page render.
type PageContext int

const (
	PageNone PageContext = iota
	PageProduct
	PageCategory
	PageCart
	PageCustomer
	PageOrder
)

func (c PageContext) String() string {
	switch c {
	case PageProduct:
		return "product"
	case PageCategory:
		return "category"
	case PageCart:
		return "cart"
	case PageCustomer:
		return "customer"
	case PageOrder:
		return "order"
	default:
		return "none"
	}
}

// PageView is the request/query state of one storefront page render.
type PageView struct {
	ProductID    int64
	CategorySlug string
	CartID       string
	CustomerID   int64
	CartPage     bool
	SearchPage   bool
	StaticPage   bool
}

// Contexts resolves the tagging contexts active for the view. The checks
// are independent, not hierarchical: a product page with a logged-in
// customer and a non-empty cart fires all three.
func (v PageView) Contexts() []PageContext {
	var active []PageContext
	if v.ProductID > 0 {
		active = append(active, PageProduct)
	}
	if v.CategorySlug != "" {
		active = append(active, PageCategory)
	}
	if v.CartID != "" {
		active = append(active, PageCart)
	}
	if v.CustomerID > 0 {
		active = append(active, PageCustomer)
	}
	if len(active) == 0 {
		return []PageContext{PageNone}
	}
	return active
}

// Has reports whether the given context is active for the view.
func (v PageView) Has(ctx PageContext) bool {
	for _, c := range v.Contexts() {
		if c == ctx {
			return true
		}
	}
	return false
}
