package settings

import "context"

// Setting keys, mirrored by the admin API.
const (
	KeyAccountID          = "account_id"
	KeyServerAddress      = "server_address"
	KeyUseDefaultElements = "use_default_elements"
	KeyCurrencyType       = "currency_type"
)

// DefaultServerAddress is the tag-manager host used until an admin
// configures one.
const DefaultServerAddress = "connect.nosto.com"

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// EnsureDefaults installs missing default values without touching
	// keys an admin has already set.
	EnsureDefaults(ctx context.Context) error
	// CurrencyCode resolves the ISO code of the store currency selected
	// by the currency_type setting.
	CurrencyCode(ctx context.Context) (string, error)
}
