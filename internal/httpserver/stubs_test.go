package httpserver

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"storefront-tagging/internal/domain"
	"storefront-tagging/internal/repository/settings"
	"storefront-tagging/internal/tagging"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubProducts struct {
	products map[int64]*domain.Product
	parents  map[int64]*domain.Product
	terms    map[int64][]domain.Term
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
	return s.terms[productID], nil
}

func (s *stubProducts) VariationPrices(_ context.Context, _ int64) ([]domain.VariationPrice, error) {
	return nil, nil
}

type stubTerms struct {
	byID   map[int64]*domain.Term
	bySlug map[string]*domain.Term
}

func (s *stubTerms) GetByID(_ context.Context, id int64) (*domain.Term, error) {
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
	carts map[string]*domain.Cart
}

func (s *stubCarts) GetByID(_ context.Context, id string) (*domain.Cart, error) {
	if c, ok := s.carts[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

type stubOrders struct {
	logs    map[int64]*domain.PurchaseLog
	items   map[int64][]domain.PurchasedItem
	form    map[int64]map[string]string
	gateway map[int64]domain.GatewayData
}

func (s *stubOrders) GetByID(_ context.Context, id int64) (*domain.PurchaseLog, error) {
	if l, ok := s.logs[id]; ok {
		return l, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) CartContents(_ context.Context, logID int64) ([]domain.PurchasedItem, error) {
	return s.items[logID], nil
}

func (s *stubOrders) CheckoutForm(_ context.Context, logID int64) (map[string]string, error) {
	if f, ok := s.form[logID]; ok {
		return f, nil
	}
	return map[string]string{}, nil
}

func (s *stubOrders) GatewayData(_ context.Context, logID int64) (domain.GatewayData, error) {
	return s.gateway[logID], nil
}

type stubUsers struct {
	users map[int64]*domain.User
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// stubSettings backs both the tagging SettingsSource and the admin
// settings.Repository.
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

func (s *stubSettings) Set(_ context.Context, key, value string) error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func (s *stubSettings) EnsureDefaults(_ context.Context) error { return nil }

func (s *stubSettings) CurrencyCode(_ context.Context) (string, error) {
	return s.currency, nil
}

var _ settings.Repository = (*stubSettings)(nil)

type routerFixture struct {
	products *stubProducts
	terms    *stubTerms
	carts    *stubCarts
	orders   *stubOrders
	users    *stubUsers
	settings *stubSettings
}

func newRouterFixture() *routerFixture {
	return &routerFixture{
		products: &stubProducts{products: map[int64]*domain.Product{}},
		terms:    &stubTerms{byID: map[int64]*domain.Term{}, bySlug: map[string]*domain.Term{}},
		carts:    &stubCarts{carts: map[string]*domain.Cart{}},
		orders:   &stubOrders{logs: map[int64]*domain.PurchaseLog{}},
		users:    &stubUsers{users: map[int64]*domain.User{}},
		settings: &stubSettings{values: map[string]string{}, currency: "EUR"},
	}
}

func buildTestRouter(t *testing.T, fix *routerFixture) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := tagging.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	svc := tagging.New(tagging.Deps{
		Products: fix.products,
		Terms:    fix.terms,
		Carts:    fix.carts,
		Orders:   fix.orders,
		Users:    fix.users,
		Settings: fix.settings,
		Renderer: renderer,
	}, logDiscard())

	router, err := buildRouter(logDiscard(), nil, Deps{
		Tagging:       svc,
		Settings:      fix.settings,
		AdminUser:     "admin",
		AdminPassword: "s3cret",
		JWTSecret:     "test-signing-key",
		JWTTTL:        time.Hour,
		ShopOrigins:   []string{"*"},
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}
