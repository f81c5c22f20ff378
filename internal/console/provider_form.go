package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// Provider form fields
const (
	ProviderSlug          = "slug"
	ProviderDisplayName   = "display_name"
	ProviderTypeField     = "provider_type"
	ProviderConnection    = "connection_type"
	ProviderActive        = "is_active"
	ProviderBaseURL       = "base_url"
	ProviderDocsURL       = "docs_url"
	ProviderRatePerMinute = "rate_limit_per_minute"
	ProviderRatePerDay    = "rate_limit_per_day"
	ProviderAuthURL       = "authorization_url"
	ProviderTokenURL      = "token_url"
	ProviderScopes        = "scopes"
	ProviderRedirectURIs  = "redirect_uris"
	ProviderHeadquarters  = "headquarters"
	ProviderFoundedYear   = "founded_year"
	ProviderWebsiteURL    = "website_url"
)

// ProviderFields lists the provider form's fields in display order
var ProviderFields = []string{
	ProviderSlug, ProviderDisplayName, ProviderTypeField, ProviderConnection, ProviderActive,
	ProviderBaseURL, ProviderDocsURL, ProviderRatePerMinute, ProviderRatePerDay,
	ProviderAuthURL, ProviderTokenURL, ProviderScopes, ProviderRedirectURIs,
	ProviderHeadquarters, ProviderFoundedYear, ProviderWebsiteURL,
}

// ProviderDraft is the editable state of the provider form. Numbers and lists are kept as typed.
type ProviderDraft struct {
	Slug               string
	DisplayName        string
	ProviderType       types.ProviderType
	ConnectionType     types.ConnectionType
	IsActive           bool
	BaseURL            string
	DocsURL            string
	RateLimitPerMinute string
	RateLimitPerDay    string
	AuthorizationURL   string
	TokenURL           string
	Scopes             string
	RedirectURIs       string
	Headquarters       string
	FoundedYear        string
	WebsiteURL         string
}

func defaultProviderDraft() ProviderDraft {
	return ProviderDraft{
		ProviderType:   types.ProviderPlatform,
		ConnectionType: types.ConnectionManual,
		IsActive:       true,
	}
}

// Get returns one field's text
func (d ProviderDraft) Get(field string) string {
	switch field {
	case ProviderSlug:
		return d.Slug
	case ProviderDisplayName:
		return d.DisplayName
	case ProviderTypeField:
		return string(d.ProviderType)
	case ProviderConnection:
		return string(d.ConnectionType)
	case ProviderActive:
		return strconv.FormatBool(d.IsActive)
	case ProviderBaseURL:
		return d.BaseURL
	case ProviderDocsURL:
		return d.DocsURL
	case ProviderRatePerMinute:
		return d.RateLimitPerMinute
	case ProviderRatePerDay:
		return d.RateLimitPerDay
	case ProviderAuthURL:
		return d.AuthorizationURL
	case ProviderTokenURL:
		return d.TokenURL
	case ProviderScopes:
		return d.Scopes
	case ProviderRedirectURIs:
		return d.RedirectURIs
	case ProviderHeadquarters:
		return d.Headquarters
	case ProviderFoundedYear:
		return d.FoundedYear
	case ProviderWebsiteURL:
		return d.WebsiteURL
	}
	return ""
}

// ProviderSaver persists providers. *client.APIClient implements it.
type ProviderSaver interface {
	CreateProvider(ctx context.Context, input types.ProviderInput) (*types.Provider, error)
	UpdateProvider(ctx context.Context, id string, input types.ProviderInput) (*types.Provider, error)
}

// ProviderSession is the create/edit provider form
type ProviderSession struct {
	modal  Modal[types.Provider]
	draft  ProviderDraft
	saving bool
}

func NewProviderSession() *ProviderSession {
	return &ProviderSession{draft: defaultProviderDraft()}
}

// Open shows the form, in create mode for nil and edit mode otherwise
func (s *ProviderSession) Open(p *types.Provider) {
	s.saving = false
	if p == nil {
		s.modal.OpenCreate()
		s.draft = defaultProviderDraft()
		return
	}

	s.modal.OpenEdit(*p)
	d := ProviderDraft{
		Slug:           p.Slug,
		DisplayName:    p.DisplayName,
		ProviderType:   p.ProviderType,
		ConnectionType: p.ConnectionType,
		IsActive:       p.IsActive,
		Headquarters:   deref(p.Headquarters),
		FoundedYear:    intString(p.FoundedYear),
		WebsiteURL:     deref(p.WebsiteURL),
	}
	if cfg := p.APIConfig; cfg != nil {
		d.BaseURL = cfg.BaseURL
		d.DocsURL = cfg.DocsURL
		d.RateLimitPerMinute = intString(cfg.RateLimitPerMinute)
		d.RateLimitPerDay = intString(cfg.RateLimitPerDay)
		d.AuthorizationURL = cfg.AuthorizationURL
		d.TokenURL = cfg.TokenURL
		d.Scopes = strings.Join(cfg.Scopes, ", ")
		d.RedirectURIs = strings.Join(cfg.RedirectURIs, ", ")
	}
	s.draft = d
}

// Close discards the draft
func (s *ProviderSession) Close() {
	s.modal.Close()
	s.draft = defaultProviderDraft()
}

func (s *ProviderSession) IsOpen() bool { return s.modal.IsOpen() }

func (s *ProviderSession) Mode() ModalState { return s.modal.State() }

func (s *ProviderSession) Editing() (types.Provider, bool) { return s.modal.Target() }

func (s *ProviderSession) Draft() ProviderDraft { return s.draft }

func (s *ProviderSession) Saving() bool { return s.saving }

// Set replaces one field of the draft
func (s *ProviderSession) Set(field, value string) error {
	d := &s.draft
	switch field {
	case ProviderSlug:
		d.Slug = value
	case ProviderDisplayName:
		d.DisplayName = value
	case ProviderTypeField:
		t := types.ProviderType(value)
		if !t.Valid() {
			return domain.NewInvalidInputError("unknown provider type " + value)
		}
		d.ProviderType = t
	case ProviderConnection:
		c := types.ConnectionType(value)
		if !c.Valid() {
			return domain.NewInvalidInputError("unknown connection type " + value)
		}
		d.ConnectionType = c
	case ProviderActive:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return domain.NewInvalidInputError("is_active must be true or false")
		}
		d.IsActive = b
	case ProviderBaseURL:
		d.BaseURL = value
	case ProviderDocsURL:
		d.DocsURL = value
	case ProviderRatePerMinute:
		d.RateLimitPerMinute = value
	case ProviderRatePerDay:
		d.RateLimitPerDay = value
	case ProviderAuthURL:
		d.AuthorizationURL = value
	case ProviderTokenURL:
		d.TokenURL = value
	case ProviderScopes:
		d.Scopes = value
	case ProviderRedirectURIs:
		d.RedirectURIs = value
	case ProviderHeadquarters:
		d.Headquarters = value
	case ProviderFoundedYear:
		d.FoundedYear = value
	case ProviderWebsiteURL:
		d.WebsiteURL = value
	default:
		return unknownField(field)
	}
	return nil
}

// Prepare validates the draft and converts it to the mutation input.
// The API config is omitted when every one of its fields is empty.
func (s *ProviderSession) Prepare() (types.ProviderInput, error) {
	d := s.draft
	if err := required("slug", d.Slug); err != nil {
		return types.ProviderInput{}, err
	}
	if err := required("display name", d.DisplayName); err != nil {
		return types.ProviderInput{}, err
	}

	perMinute, err := optionalInt("rate limit per minute", d.RateLimitPerMinute)
	if err != nil {
		return types.ProviderInput{}, err
	}
	perDay, err := optionalInt("rate limit per day", d.RateLimitPerDay)
	if err != nil {
		return types.ProviderInput{}, err
	}
	founded, err := optionalInt("founded year", d.FoundedYear)
	if err != nil {
		return types.ProviderInput{}, err
	}

	cfg := &types.APIConfig{
		BaseURL:            strings.TrimSpace(d.BaseURL),
		DocsURL:            strings.TrimSpace(d.DocsURL),
		RateLimitPerMinute: perMinute,
		RateLimitPerDay:    perDay,
		AuthorizationURL:   strings.TrimSpace(d.AuthorizationURL),
		TokenURL:           strings.TrimSpace(d.TokenURL),
		Scopes:             splitList(d.Scopes),
		RedirectURIs:       splitList(d.RedirectURIs),
	}
	if apiConfigEmpty(cfg) {
		cfg = nil
	}

	return types.ProviderInput{
		Slug:           strings.TrimSpace(d.Slug),
		DisplayName:    strings.TrimSpace(d.DisplayName),
		ProviderType:   d.ProviderType,
		ConnectionType: d.ConnectionType,
		IsActive:       d.IsActive,
		APIConfig:      cfg,
		Headquarters:   optionalString(d.Headquarters),
		FoundedYear:    founded,
		WebsiteURL:     optionalString(d.WebsiteURL),
	}, nil
}

func apiConfigEmpty(c *types.APIConfig) bool {
	return c.BaseURL == "" && c.DocsURL == "" && c.RateLimitPerMinute == nil && c.RateLimitPerDay == nil &&
		c.AuthorizationURL == "" && c.TokenURL == "" && len(c.Scopes) == 0 && len(c.RedirectURIs) == 0
}

// ProviderJob is a validated save, detached from the session
type ProviderJob struct {
	ID    string
	Input types.ProviderInput
}

// Run calls createProvider, or updateProvider when ID is set
func (j ProviderJob) Run(ctx context.Context, saver ProviderSaver) (*types.Provider, error) {
	if j.ID == "" {
		return saver.CreateProvider(ctx, j.Input)
	}
	return saver.UpdateProvider(ctx, j.ID, j.Input)
}

// Start validates the draft and marks the session saving
func (s *ProviderSession) Start() (ProviderJob, error) {
	if !s.IsOpen() {
		return ProviderJob{}, ErrSessionClosed
	}
	if s.saving {
		return ProviderJob{}, domain.NewInvalidInputError("a save is already in progress")
	}
	input, err := s.Prepare()
	if err != nil {
		return ProviderJob{}, err
	}
	job := ProviderJob{Input: input}
	if p, ok := s.modal.Target(); ok {
		job.ID = p.ID
	}
	s.saving = true
	return job, nil
}

// Finish ends a save. Success closes the form; failure keeps the draft.
func (s *ProviderSession) Finish(err error) {
	s.saving = false
	if err == nil {
		s.Close()
	}
}

// Submit runs Start, the mutation and Finish in one call
func (s *ProviderSession) Submit(ctx context.Context, saver ProviderSaver) (*types.Provider, error) {
	job, err := s.Start()
	if err != nil {
		return nil, err
	}
	p, err := job.Run(ctx, saver)
	s.Finish(err)
	return p, err
}
