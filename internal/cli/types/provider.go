package types

import "time"

// ProviderType classifies what a provider integration represents
type ProviderType string

const (
	ProviderPlatform    ProviderType = "platform"
	ProviderGameCompany ProviderType = "game_company"
	ProviderAPIService  ProviderType = "api_service"
)

// ProviderTypes lists every provider type
var ProviderTypes = []ProviderType{ProviderPlatform, ProviderGameCompany, ProviderAPIService}

// Valid reports whether t is a known provider type
func (t ProviderType) Valid() bool {
	for _, known := range ProviderTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ConnectionType is how the system authenticates against a provider
type ConnectionType string

const (
	ConnectionOAuth2      ConnectionType = "oauth2"
	ConnectionOAuth21PKCE ConnectionType = "oauth21_pkce"
	ConnectionOpenID      ConnectionType = "openid"
	ConnectionAPIKey      ConnectionType = "api_key"
	ConnectionManual      ConnectionType = "manual"
	ConnectionDisabled    ConnectionType = "disabled"
)

// ConnectionTypes lists every connection type
var ConnectionTypes = []ConnectionType{
	ConnectionOAuth2, ConnectionOAuth21PKCE, ConnectionOpenID,
	ConnectionAPIKey, ConnectionManual, ConnectionDisabled,
}

// Valid reports whether t is a known connection type
func (t ConnectionType) Valid() bool {
	for _, known := range ConnectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// APIConfig describes how to reach a provider's API
type APIConfig struct {
	BaseURL            string   `json:"baseUrl,omitempty"`
	DocsURL            string   `json:"docsUrl,omitempty"`
	RateLimitPerMinute *int     `json:"rateLimitPerMinute,omitempty"`
	RateLimitPerDay    *int     `json:"rateLimitPerDay,omitempty"`
	AuthorizationURL   string   `json:"authorizationUrl,omitempty"`
	TokenURL           string   `json:"tokenUrl,omitempty"`
	Scopes             []string `json:"scopes,omitempty"`
	RedirectURIs       []string `json:"redirectUris,omitempty"`
}

// Provider is an external game platform or company integration record
type Provider struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	DisplayName    string         `json:"displayName"`
	ProviderType   ProviderType   `json:"providerType"`
	ConnectionType ConnectionType `json:"connectionType"`
	IsActive       bool           `json:"isActive"`
	APIConfig      *APIConfig     `json:"apiConfig,omitempty"`
	Headquarters   *string        `json:"headquarters,omitempty"`
	FoundedYear    *int           `json:"foundedYear,omitempty"`
	WebsiteURL     *string        `json:"websiteUrl,omitempty"`
}

// ProviderInput is the payload of the createProvider and updateProvider mutations
type ProviderInput struct {
	Slug           string         `json:"slug"`
	DisplayName    string         `json:"displayName"`
	ProviderType   ProviderType   `json:"providerType"`
	ConnectionType ConnectionType `json:"connectionType"`
	IsActive       bool           `json:"isActive"`
	APIConfig      *APIConfig     `json:"apiConfig"`
	Headquarters   *string        `json:"headquarters"`
	FoundedYear    *int           `json:"foundedYear"`
	WebsiteURL     *string        `json:"websiteUrl"`
}

// Environment is the deployment tier a connection belongs to
type Environment string

const (
	EnvProduction  Environment = "production"
	EnvStaging     Environment = "staging"
	EnvDevelopment Environment = "development"
)

// ProviderConnection is a live credentialed link to a Provider
type ProviderConnection struct {
	ID            string      `json:"id"`
	ProviderID    string      `json:"providerId"`
	IsActive      bool        `json:"isActive"`
	LastSuccessAt *time.Time  `json:"lastSuccessAt,omitempty"`
	LastErrorAt   *time.Time  `json:"lastErrorAt,omitempty"`
	LastError     *string     `json:"lastError,omitempty"`
	RequestsToday int         `json:"requestsToday"`
	DailyLimit    *int        `json:"dailyLimit,omitempty"`
	Environment   Environment `json:"environment"`
}
