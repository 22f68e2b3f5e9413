package tagging

import (
	"context"
	"io"
	"log"
	"testing"

	"storefront-tagging/internal/domain"
)

type stubProducts struct {
	products       map[int64]*domain.Product
	parents        map[int64]*domain.Product
	categories     map[int64][]domain.Term
	variations     map[int64][]domain.VariationPrice
	variationCalls map[int64]int
	variationErr   error
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Parent(_ context.Context, productID int64) (*domain.Product, error) {
	if p, ok := s.parents[productID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) CategoriesOf(_ context.Context, productID int64) ([]domain.Term, error) {
	return s.categories[productID], nil
}

func (s *stubProducts) VariationPrices(_ context.Context, parentID int64) ([]domain.VariationPrice, error) {
	if s.variationCalls == nil {
		s.variationCalls = make(map[int64]int)
	}
	s.variationCalls[parentID]++
	if s.variationErr != nil {
		return nil, s.variationErr
	}
	return s.variations[parentID], nil
}

type stubTerms struct {
	byID   map[int64]*domain.Term
	bySlug map[string]*domain.Term
	idErr  map[int64]error
}

func (s *stubTerms) GetByID(_ context.Context, id int64) (*domain.Term, error) {
	if err, ok := s.idErr[id]; ok {
		return nil, err
	}
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubTerms) GetBySlug(_ context.Context, slug string) (*domain.Term, error) {
	if t, ok := s.bySlug[slug]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

type stubCarts struct {
	cart *domain.Cart
	err  error
}

func (s *stubCarts) GetByID(_ context.Context, _ string) (*domain.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

type stubOrders struct {
	log     *domain.PurchaseLog
	items   []domain.PurchasedItem
	form    map[string]string
	gateway domain.GatewayData
}

func (s *stubOrders) GetByID(_ context.Context, _ int64) (*domain.PurchaseLog, error) {
	if s.log == nil {
		return nil, domain.ErrNotFound
	}
	return s.log, nil
}

func (s *stubOrders) CartContents(_ context.Context, _ int64) ([]domain.PurchasedItem, error) {
	return s.items, nil
}

func (s *stubOrders) CheckoutForm(_ context.Context, _ int64) (map[string]string, error) {
	if s.form == nil {
		return map[string]string{}, nil
	}
	return s.form, nil
}

func (s *stubOrders) GatewayData(_ context.Context, _ int64) (domain.GatewayData, error) {
	return s.gateway, nil
}

type stubUsers struct {
	user *domain.User
}

func (s *stubUsers) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrNotFound
	}
	return s.user, nil
}

type stubSettings struct {
	values   map[string]string
	currency string
}

func (s *stubSettings) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", domain.ErrNotFound
}

func (s *stubSettings) CurrencyCode(_ context.Context) (string, error) {
	return s.currency, nil
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func testService(t *testing.T, deps Deps) *Service {
	t.Helper()
	if deps.Renderer == nil {
		deps.Renderer = testRenderer(t)
	}
	if deps.Settings == nil {
		deps.Settings = &stubSettings{currency: "USD"}
	}
	return New(deps, log.New(io.Discard, "", 0))
}
