package shopify

import (
	"errors"
	"fmt"
)

// Config holds credentials and connection settings for the Shopify Admin
// REST API. Values come from injected configuration only; credentials are
// never compiled into the binary.
type Config struct {
	// Shop is the myshopify domain, e.g. "example-store.myshopify.com"
	Shop string
	// APIVersion is the Admin API version segment, e.g. "2023-10"
	APIVersion string
	// AccessToken is the Admin API access token (X-Shopify-Access-Token)
	AccessToken string
	// APIKey is the app's API key, sent alongside the token when set
	APIKey string
	// APISecret is the app's API secret, sent alongside the token when set
	APISecret string
	// APIBaseURL overrides the computed base URL; used by tests
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultAPIVersion is the Admin API version this service was built against
const DefaultAPIVersion = "2023-10"

// Errors for Shopify configuration
var (
	ErrConfigMissingShop        = errors.New("shopify: shop domain is required")
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewConfig creates a Shopify configuration with defaults applied
func NewConfig(shop, accessToken string) *Config {
	return &Config{
		Shop:           shop,
		APIVersion:     DefaultAPIVersion,
		AccessToken:    accessToken,
		TimeoutSeconds: 30,
	}
}

// Validate checks required fields and fills in defaults
func (c *Config) Validate() error {
	if c.Shop == "" && c.APIBaseURL == "" {
		return ErrConfigMissingShop
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = fmt.Sprintf("https://%s/admin/api/%s", c.Shop, c.APIVersion)
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
