package tagging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"storefront-tagging/internal/domain"
)

func TestTagProduct_RendersAllFields(t *testing.T) {
	products := &stubProducts{
		products: map[int64]*domain.Product{
			12: {
				ID:          12,
				Slug:        "tee",
				Name:        "Basic Tee",
				Permalink:   "https://shop.example/products/tee",
				ImageURL:    "https://shop.example/img/tee.jpg",
				Description: "Soft cotton tee",
				PublishedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
				InStock:     true,
				Price:       19.5,
			},
		},
		categories: map[int64][]domain.Term{
			12: {{ID: 3, Name: "Tees", ParentID: 2}},
		},
	}
	terms := &stubTerms{
		byID: map[int64]*domain.Term{
			1: {ID: 1, Name: "Clothing"},
			2: {ID: 2, Name: "Shirts", ParentID: 1},
		},
	}
	svc := testService(t, Deps{Products: products, Terms: terms})

	var buf bytes.Buffer
	if err := svc.TagProduct(context.Background(), &buf, 12); err != nil {
		t.Fatalf("tag product: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`class="nosto_product"`,
		`<span class="url">https://shop.example/products/tee</span>`,
		`<span class="product_id">12</span>`,
		`<span class="name">Basic Tee</span>`,
		`<span class="price">19.50</span>`,
		`<span class="list_price">19.50</span>`,
		`<span class="price_currency_code">USD</span>`,
		`<span class="availability">InStock</span>`,
		`<span class="category">/Clothing/Shirts/Tees</span>`,
		`<span class="date_published">2026-03-14</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTagProduct_OutOfStockAndVariationPrice(t *testing.T) {
	products := &stubProducts{
		products: map[int64]*domain.Product{
			12: {ID: 12, Name: "Hoodie", HasVariations: true, InStock: false},
		},
		variations: map[int64][]domain.VariationPrice{
			12: {{Price: 40, SpecialPrice: 35}, {Price: 30}},
		},
	}
	svc := testService(t, Deps{Products: products, Terms: &stubTerms{}})

	var buf bytes.Buffer
	if err := svc.TagProduct(context.Background(), &buf, 12); err != nil {
		t.Fatalf("tag product: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<span class="availability">OutOfStock</span>`) {
		t.Fatalf("expected OutOfStock availability:\n%s", out)
	}
	if !strings.Contains(out, `<span class="price">30.00</span>`) {
		t.Fatalf("expected lowest variation price 30.00:\n%s", out)
	}
}

func TestTagProduct_MissingProductRendersNothing(t *testing.T) {
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}})

	var buf bytes.Buffer
	if err := svc.TagProduct(context.Background(), &buf, 99); err != nil {
		t.Fatalf("tag product: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTagCategory_RendersPath(t *testing.T) {
	terms := &stubTerms{
		byID: map[int64]*domain.Term{
			1: {ID: 1, Name: "Clothing"},
		},
		bySlug: map[string]*domain.Term{
			"shirts": {ID: 2, Slug: "shirts", Name: "Shirts", ParentID: 1},
		},
	}
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: terms})

	var buf bytes.Buffer
	if err := svc.TagCategory(context.Background(), &buf, "shirts"); err != nil {
		t.Fatalf("tag category: %v", err)
	}
	if !strings.Contains(buf.String(), `<div class="nosto_category" style="display:none">/Clothing/Shirts</div>`) {
		t.Fatalf("unexpected category output:\n%s", buf.String())
	}
}

func TestTagCategory_UnknownSlugRendersNothing(t *testing.T) {
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}})

	var buf bytes.Buffer
	if err := svc.TagCategory(context.Background(), &buf, "missing"); err != nil {
		t.Fatalf("tag category: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTagCustomer_LastNameFallsBackToLogin(t *testing.T) {
	users := &stubUsers{
		user: &domain.User{ID: 3, Login: "jdoe", FirstName: "Jo", Email: "jo@example.com"},
	}
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Users: users})

	var buf bytes.Buffer
	if err := svc.TagCustomer(context.Background(), &buf, 3); err != nil {
		t.Fatalf("tag customer: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<span class="last_name">jdoe</span>`) {
		t.Fatalf("expected login fallback:\n%s", out)
	}
	if !strings.Contains(out, `<span class="email">jo@example.com</span>`) {
		t.Fatalf("expected email:\n%s", out)
	}
}

func TestTagCustomer_AnonymousRendersNothing(t *testing.T) {
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Users: &stubUsers{}})

	var buf bytes.Buffer
	if err := svc.TagCustomer(context.Background(), &buf, 0); err != nil {
		t.Fatalf("tag customer: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTagCart_EmptyCartRendersNothing(t *testing.T) {
	carts := &stubCarts{cart: &domain.Cart{ID: "c1"}}
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Carts: carts})

	var buf bytes.Buffer
	if err := svc.TagCart(context.Background(), &buf, "c1"); err != nil {
		t.Fatalf("tag cart: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTagCart_VariantLinesUseParentProduct(t *testing.T) {
	products := &stubProducts{
		parents: map[int64]*domain.Product{
			101: {ID: 12, Name: "Basic Tee"},
		},
	}
	carts := &stubCarts{
		cart: &domain.Cart{
			ID: "c1",
			Items: []domain.CartItem{
				{ProductID: 101, Name: "Basic Tee - Large", Quantity: 2, UnitPrice: 19.5},
				{ProductID: 55, Name: "Sticker", Quantity: 1, UnitPrice: 3},
			},
		},
	}
	svc := testService(t, Deps{Products: products, Terms: &stubTerms{}, Carts: carts})

	var buf bytes.Buffer
	if err := svc.TagCart(context.Background(), &buf, "c1"); err != nil {
		t.Fatalf("tag cart: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<span class="product_id">12</span>`) ||
		!strings.Contains(out, `<span class="name">Basic Tee</span>`) {
		t.Fatalf("expected parent substitution for variant line:\n%s", out)
	}
	if !strings.Contains(out, `<span class="product_id">55</span>`) ||
		!strings.Contains(out, `<span class="name">Sticker</span>`) {
		t.Fatalf("expected plain line kept as-is:\n%s", out)
	}
	if !strings.Contains(out, `<span class="unit_price">19.50</span>`) {
		t.Fatalf("expected formatted unit price:\n%s", out)
	}
}

func TestTagOrder_SyntheticLines(t *testing.T) {
	orders := &stubOrders{
		log: &domain.PurchaseLog{ID: 42},
		items: []domain.PurchasedItem{
			{ProductID: 12, Name: "Basic Tee", Quantity: 1, Price: 20},
		},
		form: map[string]string{
			"billingfirstname": "Jo",
			"billinglastname":  "Doe",
			"billingemail":     "jo@example.com",
		},
		gateway: domain.GatewayData{Tax: 5, Shipping: 0, Discount: 2},
	}
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Orders: orders})

	var buf bytes.Buffer
	if err := svc.TagOrder(context.Background(), &buf, 42); err != nil {
		t.Fatalf("tag order: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<span class="order_number">42</span>`) {
		t.Fatalf("expected order number:\n%s", out)
	}
	if !strings.Contains(out, `<span class="first_name">Jo</span>`) {
		t.Fatalf("expected buyer first name:\n%s", out)
	}
	if !strings.Contains(out, `<span class="name">Tax</span>`) ||
		!strings.Contains(out, `<span class="unit_price">5.00</span>`) {
		t.Fatalf("expected Tax line at 5.00:\n%s", out)
	}
	if !strings.Contains(out, `<span class="name">Discount</span>`) ||
		!strings.Contains(out, `<span class="unit_price">-2.00</span>`) {
		t.Fatalf("expected Discount line at -2.00:\n%s", out)
	}
	if strings.Contains(out, `<span class="name">Shipping</span>`) {
		t.Fatalf("zero shipping must be omitted:\n%s", out)
	}
	if got := strings.Count(out, `class="line_item"`); got != 3 {
		t.Fatalf("expected 3 line items, got %d:\n%s", got, out)
	}
}

func TestTagOrder_OnlyGatewayAmountsRendersNothing(t *testing.T) {
	orders := &stubOrders{
		log:     &domain.PurchaseLog{ID: 43},
		gateway: domain.GatewayData{Tax: 5},
	}
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Orders: orders})

	var buf bytes.Buffer
	if err := svc.TagOrder(context.Background(), &buf, 43); err != nil {
		t.Fatalf("tag order: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("order with no product lines must render nothing, got %q", buf.String())
	}
}

func TestTagOrder_UnknownOrderRendersNothing(t *testing.T) {
	svc := testService(t, Deps{Products: &stubProducts{}, Terms: &stubTerms{}, Orders: &stubOrders{}})

	var buf bytes.Buffer
	if err := svc.TagOrder(context.Background(), &buf, 1); err != nil {
		t.Fatalf("tag order: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestHeadScript_RequiresAccountID(t *testing.T) {
	svc := testService(t, Deps{
		Products: &stubProducts{},
		Terms:    &stubTerms{},
		Settings: &stubSettings{values: map[string]string{}, currency: "USD"},
	})

	var buf bytes.Buffer
	if err := svc.HeadScript(context.Background(), &buf); err != nil {
		t.Fatalf("head script: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no script without account id, got %q", buf.String())
	}
}

func TestHeadScript_RendersEmbedURL(t *testing.T) {
	svc := testService(t, Deps{
		Products: &stubProducts{},
		Terms:    &stubTerms{},
		Settings: &stubSettings{
			values:   map[string]string{"account_id": "shop-123", "server_address": "connect.nosto.com"},
			currency: "USD",
		},
	})

	var buf bytes.Buffer
	if err := svc.HeadScript(context.Background(), &buf); err != nil {
		t.Fatalf("head script: %v", err)
	}
	if !strings.Contains(buf.String(), `src="//connect.nosto.com/include/shop-123"`) {
		t.Fatalf("unexpected script output:\n%s", buf.String())
	}
}
