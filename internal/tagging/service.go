package tagging

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront-tagging/internal/domain"
	"storefront-tagging/internal/repository/settings"
)

// ProductSource is the catalog contract the tagging pipeline reads from.
type ProductSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Parent(ctx context.Context, productID int64) (*domain.Product, error)
	CategoriesOf(ctx context.Context, productID int64) ([]domain.Term, error)
	VariationPrices(ctx context.Context, parentID int64) ([]domain.VariationPrice, error)
}

type CartSource interface {
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
}

type OrderSource interface {
	GetByID(ctx context.Context, id int64) (*domain.PurchaseLog, error)
	CartContents(ctx context.Context, logID int64) ([]domain.PurchasedItem, error)
	CheckoutForm(ctx context.Context, logID int64) (map[string]string, error)
	GatewayData(ctx context.Context, logID int64) (domain.GatewayData, error)
}

type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type SettingsSource interface {
	Get(ctx context.Context, key string) (string, error)
	CurrencyCode(ctx context.Context) (string, error)
}

// Deps are the host-platform collaborators of the tagging pipeline.
// ConvertPrice and ElementFilter default to identity when nil.
type Deps struct {
	Products      ProductSource
	Terms         TermSource
	Carts         CartSource
	Orders        OrderSource
	Users         UserSource
	Settings      SettingsSource
	Renderer      *Renderer
	ConvertPrice  ConvertFunc
	ElementFilter ElementFilter
}

// Service builds and renders tagging blocks for storefront pages.
// Extraction failures never surface as errors: a tag with missing or
// invalid data is silently suppressed so the page render is unaffected.
type Service struct {
	products      ProductSource
	terms         TermSource
	carts         CartSource
	orders        OrderSource
	users         UserSource
	settings      SettingsSource
	renderer      *Renderer
	paths         *PathBuilder
	convert       ConvertFunc
	elementFilter ElementFilter
	logger        *log.Logger
}

func New(deps Deps, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	filter := deps.ElementFilter
	if filter == nil {
		filter = func(_ ElementArea, ids []string) []string { return ids }
	}
	return &Service{
		products:      deps.Products,
		terms:         deps.Terms,
		carts:         deps.Carts,
		orders:        deps.Orders,
		users:         deps.Users,
		settings:      deps.Settings,
		renderer:      deps.Renderer,
		paths:         NewPathBuilder(deps.Terms),
		convert:       deps.ConvertPrice,
		elementFilter: filter,
		logger:        logger,
	}
}

// RenderPage writes every tagging and element block active for the view,
// in page-lifecycle order: head script, top-of-page product/category tags
// and elements, body elements, footer customer and cart tags.
func (s *Service) RenderPage(ctx context.Context, w io.Writer, view PageView) error {
	norm := NewPriceNormalizer(s.products, s.convert)
	currency := s.currencyCode(ctx)

	if err := s.HeadScript(ctx, w); err != nil {
		return err
	}

	if view.Has(PageProduct) {
		if err := s.tagProduct(ctx, w, norm, currency, view.ProductID); err != nil {
			return err
		}
	}
	if view.Has(PageCategory) {
		if err := s.tagCategory(ctx, w, view.CategorySlug); err != nil {
			return err
		}
	}

	if s.useDefaultElements(ctx) {
		areas := []struct {
			active bool
			area   ElementArea
		}{
			{view.Has(PageCategory), AreaCategoryPageTop},
			{view.SearchPage, AreaSearchPageTop},
			{view.StaticPage, AreaPageTop},
			{view.Has(PageProduct), AreaProductPageBottom},
			{view.Has(PageCategory), AreaCategoryPageBottom},
			{view.CartPage, AreaCartPageBottom},
			{view.SearchPage, AreaSearchPageBottom},
			{view.StaticPage, AreaPageBottom},
		}
		for _, a := range areas {
			if !a.active {
				continue
			}
			if err := s.Elements(w, a.area); err != nil {
				return err
			}
		}
	}

	if view.Has(PageCustomer) {
		if err := s.TagCustomer(ctx, w, view.CustomerID); err != nil {
			return err
		}
	}
	if view.Has(PageCart) {
		if err := s.tagCart(ctx, w, currency, view.CartID); err != nil {
			return err
		}
	}
	return nil
}

// HeadScript writes the tag-manager bootstrap block. Nothing is written
// until an account id has been configured.
func (s *Service) HeadScript(ctx context.Context, w io.Writer) error {
	account, err := s.settings.Get(ctx, settings.KeyAccountID)
	if err != nil || account == "" {
		return nil
	}
	server, err := s.settings.Get(ctx, settings.KeyServerAddress)
	if err != nil || server == "" {
		server = settings.DefaultServerAddress
	}
	return s.renderer.Render(w, "embed-script", ScriptTag{ServerAddress: server, AccountID: account})
}

// TagProduct renders the product tagging block for a product-detail page.
func (s *Service) TagProduct(ctx context.Context, w io.Writer, productID int64) error {
	norm := NewPriceNormalizer(s.products, s.convert)
	return s.tagProduct(ctx, w, norm, s.currencyCode(ctx), productID)
}

func (s *Service) tagProduct(ctx context.Context, w io.Writer, norm *PriceNormalizer, currency string, productID int64) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		s.suppress(PageProduct, err)
		return nil
	}

	tag := ProductTag{
		URL:           p.Permalink,
		ProductID:     p.ID,
		Name:          p.Name,
		ImageURL:      p.ImageURL,
		Price:         norm.Resolve(ctx, p, false),
		CurrencyCode:  currency,
		Availability:  ProductOutOfStock,
		Description:   p.Description,
		ListPrice:     norm.Resolve(ctx, p, true),
		DatePublished: p.PublishedAt.Format("2006-01-02"),
	}
	if p.InStock {
		tag.Availability = ProductInStock
	}

	terms, err := s.products.CategoriesOf(ctx, p.ID)
	if err != nil {
		s.suppress(PageProduct, err)
		return nil
	}
	for i := range terms {
		if path := s.paths.Build(ctx, &terms[i]); path != "" {
			tag.Categories = append(tag.Categories, path)
		}
	}

	return s.renderer.Render(w, "product-tagging", tag)
}

// TagCategory renders the category tagging block for a listing page.
func (s *Service) TagCategory(ctx context.Context, w io.Writer, slug string) error {
	return s.tagCategory(ctx, w, slug)
}

func (s *Service) tagCategory(ctx context.Context, w io.Writer, slug string) error {
	if slug == "" {
		return nil
	}
	term, err := s.terms.GetBySlug(ctx, slug)
	if err != nil {
		s.suppress(PageCategory, err)
		return nil
	}
	path := s.paths.Build(ctx, term)
	if path == "" {
		return nil
	}
	return s.renderer.Render(w, "category-tagging", CategoryTag{Path: path})
}

// TagCustomer renders the customer tagging block for an authenticated
// session. The login name stands in when the last name is absent.
func (s *Service) TagCustomer(ctx context.Context, w io.Writer, userID int64) error {
	if userID <= 0 {
		return nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.suppress(PageCustomer, err)
		return nil
	}
	tag := CustomerTag{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
	if tag.LastName == "" {
		tag.LastName = u.Login
	}
	return s.renderer.Render(w, "customer-tagging", tag)
}

// TagCart renders the cart tagging block. Empty carts render nothing.
func (s *Service) TagCart(ctx context.Context, w io.Writer, cartID string) error {
	return s.tagCart(ctx, w, s.currencyCode(ctx), cartID)
}

func (s *Service) tagCart(ctx context.Context, w io.Writer, currency, cartID string) error {
	if cartID == "" {
		return nil
	}
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		s.suppress(PageCart, err)
		return nil
	}
	if len(cart.Items) == 0 {
		return nil
	}

	lines := make([]LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		id, name := s.resolveParent(ctx, item.ProductID, item.Name)
		lines = append(lines, LineItem{
			ProductID:    id,
			Quantity:     item.Quantity,
			Name:         name,
			UnitPrice:    FormatPrice(item.UnitPrice),
			CurrencyCode: currency,
		})
	}
	if len(lines) == 0 {
		return nil
	}
	return s.renderer.Render(w, "cart-tagging", CartTag{LineItems: lines})
}

// TagOrder renders the order tagging block for a finalized purchase log.
// Synthetic tax, shipping and discount lines are appended only when the
// order has at least one real line item; the non-empty check deliberately
// precedes the synthetic additions.
func (s *Service) TagOrder(ctx context.Context, w io.Writer, orderID int64) error {
	pl, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.suppress(PageOrder, err)
		return nil
	}
	currency := s.currencyCode(ctx)

	form, err := s.orders.CheckoutForm(ctx, pl.ID)
	if err != nil {
		s.suppress(PageOrder, err)
		form = map[string]string{}
	}
	tag := OrderTag{
		OrderNumber: pl.ID,
		Buyer: CustomerTag{
			FirstName: form["billingfirstname"],
			LastName:  form["billinglastname"],
			Email:     form["billingemail"],
		},
	}

	items, err := s.orders.CartContents(ctx, pl.ID)
	if err != nil {
		s.suppress(PageOrder, err)
		return nil
	}
	for _, item := range items {
		id, name := s.resolveParent(ctx, item.ProductID, item.Name)
		tag.LineItems = append(tag.LineItems, LineItem{
			ProductID:    id,
			Quantity:     item.Quantity,
			Name:         name,
			UnitPrice:    FormatPrice(item.Price),
			CurrencyCode: currency,
		})
	}
	if len(tag.LineItems) == 0 {
		return nil
	}

	gateway, err := s.orders.GatewayData(ctx, pl.ID)
	if err != nil {
		s.suppress(PageOrder, err)
		gateway = domain.GatewayData{}
	}
	synthetic := []struct {
		name   string
		amount float64
		negate bool
	}{
		{"Tax", gateway.Tax, false},
		{"Shipping", gateway.Shipping, false},
		{"Discount", gateway.Discount, true},
	}
	for _, line := range synthetic {
		if line.amount <= 0 {
			continue
		}
		amount := line.amount
		if line.negate {
			amount = -amount
		}
		tag.LineItems = append(tag.LineItems, LineItem{
			ProductID:    -1,
			Quantity:     1,
			Name:         line.name,
			UnitPrice:    FormatPrice(amount),
			CurrencyCode: currency,
		})
	}

	return s.renderer.Render(w, "order-tagging", tag)
}

// resolveParent substitutes the parent product's id and name when the
// purchased or carted item is a variant row.
func (s *Service) resolveParent(ctx context.Context, productID int64, fallbackName string) (int64, string) {
	parent, err := s.products.Parent(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("tagging: parent lookup product_id=%d error=%v", productID, err)
		}
		return productID, fallbackName
	}
	return parent.ID, parent.Name
}

func (s *Service) currencyCode(ctx context.Context) string {
	code, err := s.settings.CurrencyCode(ctx)
	if err != nil {
		s.logger.Printf("tagging: currency lookup error=%v", err)
		return ""
	}
	return code
}

func (s *Service) useDefaultElements(ctx context.Context) bool {
	value, err := s.settings.Get(ctx, settings.KeyUseDefaultElements)
	if err != nil {
		// Missing key falls back to the install default.
		return errors.Is(err, domain.ErrNotFound)
	}
	return value == "1"
}

func (s *Service) suppress(ctx PageContext, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	s.logger.Printf("tagging: %s tag suppressed: %v", ctx, err)
}
