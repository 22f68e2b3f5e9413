package tagging

// Availability values used in product tagging.
const (
	ProductInStock    = "InStock"
	ProductOutOfStock = "OutOfStock"
)

// ProductTag is the payload of the product tagging block. Field order and
// names are the wire contract with the client-side tag-manager script.
type ProductTag struct {
	URL           string
	ProductID     int64
	Name          string
	ImageURL      string
	Price         string
	CurrencyCode  string
	Availability  string
	Categories    []string
	Description   string
	ListPrice     string
	DatePublished string
}

// CategoryTag carries the hierarchical path of the active category.
type CategoryTag struct {
	Path string
}

// CustomerTag is rendered for authenticated sessions only.
type CustomerTag struct {
	FirstName string
	LastName  string
	Email     string
}

// LineItem is one line of a cart or order tagging block. Synthetic order
// lines (tax, shipping, discount) use ProductID -1.
type LineItem struct {
	ProductID    int64
	Quantity     int
	Name         string
	UnitPrice    string
	CurrencyCode string
}

type CartTag struct {
	LineItems []LineItem
}

type OrderTag struct {
	OrderNumber int64
	Buyer       CustomerTag
	LineItems   []LineItem
}

// ScriptTag parameterizes the tag-manager bootstrap script block.
type ScriptTag struct {
	ServerAddress string
	AccountID     string
}

// ElementsTag lists placeholder slot ids for one page area.
type ElementsTag struct {
	ElementIDs []string
}
